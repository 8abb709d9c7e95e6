package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username              string             `bson:"username" json:"username"`
	Email                 string             `bson:"email" json:"email"`
	PasswordHash          string             `bson:"passwordHash" json:"-"`
	Role                  string             `bson:"role" json:"role"`
	IsEmailVerified       bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	EmailVerificationCode string             `bson:"emailVerificationCode,omitempty" json:"-"`
	ResetPasswordToken    string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires  *time.Time         `bson:"resetPasswordExpires,omitempty" json:"-"`

	// Version guards read-modify-write updates against lost writes.
	Version int64 `bson:"version" json:"-"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int64              `bson:"quantity" json:"quantity"`
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"user" json:"user"`
	Products    []OrderItem        `bson:"products" json:"products"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
