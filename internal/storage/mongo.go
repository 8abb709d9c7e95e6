package storage

import (
	"context"
	"errors"
	"fmt"

	"shop_service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	ordersCollection   = "orders"
)

type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStorage(ctx context.Context, uri, database string) (*MongoStorage, error) {
	const op = "storage.NewMongoStorage"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st := &MongoStorage{
		client: client,
		db:     client.Database(database),
	}

	if err := st.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

func (s *MongoStorage) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(productsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
	})
	return err
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStorage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.CreateUser"

	user.ID = primitive.NewObjectID()
	user.Version = 1

	_, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *MongoStorage) UserByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *MongoStorage) UserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *MongoStorage) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	const op = "storage.findUser"

	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *MongoStorage) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.UpdateUser"

	prev := user.Version
	user.Version = prev + 1

	res, err := s.db.Collection(usersCollection).ReplaceOne(ctx,
		bson.M{"_id": user.ID, "version": prev}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrConflict)
	}

	return user, nil
}

func (s *MongoStorage) ListProducts(ctx context.Context, page, limit int64, search string) (ProductPage, error) {
	const op = "storage.ListProducts"

	filter := bson.M{}
	if search != "" {
		filter["$text"] = bson.M{"$search": search}
	}

	coll := s.db.Collection(productsCollection)

	count, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return ProductPage{
		Products:    products,
		TotalPages:  (count + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (s *MongoStorage) ProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	const op = "storage.ProductByID"

	var product models.Product
	err := s.db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (s *MongoStorage) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "storage.CreateProduct"

	product.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(productsCollection).InsertOne(ctx, product); err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (s *MongoStorage) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "storage.UpdateProduct"

	res, err := s.db.Collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return product, nil
}

func (s *MongoStorage) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteProduct"

	res, err := s.db.Collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

func (s *MongoStorage) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "storage.ListOrders"

	cur, err := s.db.Collection(ordersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (s *MongoStorage) OrderByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	const op = "storage.OrderByID"

	var order models.Order
	err := s.db.Collection(ordersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (s *MongoStorage) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "storage.CreateOrder"

	order.ID = primitive.NewObjectID()
	if _, err := s.db.Collection(ordersCollection).InsertOne(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

func (s *MongoStorage) UpdateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "storage.UpdateOrder"

	res, err := s.db.Collection(ordersCollection).ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return order, nil
}

func (s *MongoStorage) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteOrder"

	res, err := s.db.Collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}
