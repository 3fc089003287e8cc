package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Message   string             `bson:"message" json:"message"`
	User      *UserSummary       `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Testimonial is a site-wide review, independent of any product.
type Testimonial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Comment   string             `bson:"comment" json:"comment"`
	Rating    float64            `bson:"rating" json:"rating"`
	User      *UserSummary       `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
