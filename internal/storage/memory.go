package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"shop_service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStorage is a map-backed Storage used by tests and local runs
// without a Mongo instance. Semantics mirror MongoStorage: unique
// username/email, versioned user updates, substring product search.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	products map[primitive.ObjectID]models.Product
	orders   map[primitive.ObjectID]models.Order
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[primitive.ObjectID]models.User),
		products: make(map[primitive.ObjectID]models.Product),
		orders:   make(map[primitive.ObjectID]models.Order),
	}
}

func (s *MemoryStorage) Close(_ context.Context) error { return nil }

func (s *MemoryStorage) CreateUser(_ context.Context, user models.User) (models.User, error) {
	const op = "storage.CreateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
	}

	user.ID = primitive.NewObjectID()
	user.Version = 1
	s.users[user.ID] = user

	return user, nil
}

func (s *MemoryStorage) UserByUsername(_ context.Context, username string) (models.User, error) {
	const op = "storage.UserByUsername"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
}

func (s *MemoryStorage) UserByEmail(_ context.Context, email string) (models.User, error) {
	const op = "storage.UserByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
}

func (s *MemoryStorage) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	const op = "storage.UpdateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if stored.Version != user.Version {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrConflict)
	}

	user.Version++
	s.users[user.ID] = user

	return user, nil
}

func (s *MemoryStorage) ListProducts(_ context.Context, page, limit int64, search string) (ProductPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []models.Product{}
	needle := strings.ToLower(search)
	for _, p := range s.products {
		if search == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}

	count := int64(len(matched))
	start := (page - 1) * limit
	if start > count {
		start = count
	}
	end := start + limit
	if end > count {
		end = count
	}

	return ProductPage{
		Products:    matched[start:end],
		TotalPages:  (count + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

func (s *MemoryStorage) ProductByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	const op = "storage.ProductByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStorage) CreateProduct(_ context.Context, product models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = primitive.NewObjectID()
	s.products[product.ID] = product

	return product, nil
}

func (s *MemoryStorage) UpdateProduct(_ context.Context, product models.Product) (models.Product, error) {
	const op = "storage.UpdateProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return models.Product{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	s.products[product.ID] = product

	return product, nil
}

func (s *MemoryStorage) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	delete(s.products, id)

	return nil
}

func (s *MemoryStorage) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *MemoryStorage) OrderByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	const op = "storage.OrderByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return o, nil
}

func (s *MemoryStorage) CreateOrder(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order

	return order, nil
}

func (s *MemoryStorage) UpdateOrder(_ context.Context, order models.Order) (models.Order, error) {
	const op = "storage.UpdateOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return models.Order{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	s.orders[order.ID] = order

	return order, nil
}

func (s *MemoryStorage) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	const op = "storage.DeleteOrder"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	delete(s.orders, id)

	return nil
}
