package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Products  []CartItem         `bson:"products" json:"products"`
	Revision  int64              `bson:"revision" json:"revision"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Find returns the index of the (productID, size) line, or -1.
func (c *Cart) Find(productID primitive.ObjectID, size string) int {
	for i, item := range c.Products {
		if item.ProductID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

// CartLine is a cart item joined with live catalog data.
type CartLine struct {
	ProductID   primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Images      []string           `json:"images"`
	Description string             `json:"description"`
	Size        string             `json:"size"`
	Quantity    int                `json:"quantity"`
	Price       float64            `json:"price"`
}
