package mongostore

import (
	"context"

	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WishlistStore struct {
	coll *mongo.Collection
}

var _ store.WishlistStore = (*WishlistStore)(nil)

func (s *WishlistStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var w models.Wishlist
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&w); err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// Add is a set insertion; adding a product twice keeps one entry.
func (s *WishlistStore) Add(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$addToSet": bson.M{"productIds": productID}},
		options.Update().SetUpsert(true),
	)
	return translate(err)
}

func (s *WishlistStore) Remove(ctx context.Context, userID, productID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"productIds": productID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
