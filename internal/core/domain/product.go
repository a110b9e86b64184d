package domain

import (
	"errors"
	"time"
)

var ErrProductExists = errors.New("product already exists")
var ErrProductNotFound = errors.New("product not found")
var ErrInvalidPrice = errors.New("price must be non-negative")
var ErrInvalidProduct = errors.New("product name is required")

// Product is a catalog entry. The name doubles as the public identifier, so
// it is enforced unique at the store; records never change after creation.
type Product struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
