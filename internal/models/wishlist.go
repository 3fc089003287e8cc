package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Wishlist struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds"`
}
