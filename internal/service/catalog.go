package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop_service/internal/models"
	"shop_service/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProductNotFound = errors.New("product not found")

var ErrOrderNotFound = errors.New("order not found")

// Catalog is the product/order CRUD surface. Beyond existence checks
// it carries no business rules; it exists so handlers stay transport
// only.
type Catalog interface {
	ListProducts(ctx context.Context, page, limit int64, search string) (storage.ProductPage, error)
	Product(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	Order(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	UpdateOrder(ctx context.Context, order models.Order) (models.Order, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
}

func (s *service) ListProducts(ctx context.Context, page, limit int64, search string) (storage.ProductPage, error) {
	const op = "service.ListProducts"

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	res, err := s.storage.ListProducts(ctx, page, limit, search)
	if err != nil {
		return storage.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *service) Product(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	const op = "service.Product"

	product, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Product{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "service.CreateProduct"

	product, err := s.storage.CreateProduct(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "service.UpdateProduct"

	product, err := s.storage.UpdateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Product{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	const op = "service.DeleteProduct"

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *service) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "service.ListOrders"

	orders, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *service) Order(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	const op = "service.Order"

	order, err := s.storage.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *service) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "service.CreateOrder"

	order.CreatedAt = time.Now().UTC()

	order, err := s.storage.CreateOrder(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s *service) UpdateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	const op = "service.UpdateOrder"

	stored, err := s.storage.OrderByID(ctx, order.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Order{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	stored.Products = order.Products
	stored.TotalAmount = order.TotalAmount

	stored, err = s.storage.UpdateOrder(ctx, stored)
	if err != nil {
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

func (s *service) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	const op = "service.DeleteOrder"

	if err := s.storage.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
