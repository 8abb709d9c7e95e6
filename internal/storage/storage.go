package storage

import (
	"context"
	"errors"

	"shop_service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique constraint (username or
	// email) is violated.
	ErrDuplicate = errors.New("already exists")

	// ErrConflict is returned by UpdateUser when the stored record
	// changed since it was read.
	ErrConflict = errors.New("stale update")
)

type ProductPage struct {
	Products    []models.Product `json:"products"`
	TotalPages  int64            `json:"totalPages"`
	CurrentPage int64            `json:"currentPage"`
}

type Storage interface {
	// Users
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdateUser writes back a record previously read from the store.
	// The write only applies if the stored version still matches;
	// otherwise ErrConflict is returned and the caller must re-read.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// Products
	ListProducts(ctx context.Context, page, limit int64, search string) (ProductPage, error)
	ProductByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	// Orders
	ListOrders(ctx context.Context) ([]models.Order, error)
	OrderByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	UpdateOrder(ctx context.Context, order models.Order) (models.Order, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error

	Close(ctx context.Context) error
}
