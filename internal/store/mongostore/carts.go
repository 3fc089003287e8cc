package mongostore

import (
	"context"
	"time"

	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartStore struct {
	coll *mongo.Collection
}

var _ store.CartStore = (*CartStore)(nil)

func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	items := cart.Products
	if items == nil {
		items = []models.CartItem{}
	}

	var saved models.Cart
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": cart.UserID},
		bson.M{
			"$set": bson.M{"products": items, "updatedAt": time.Now()},
			"$inc": bson.M{"revision": 1},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return translate(err)
	}

	cart.ID = saved.ID
	cart.Revision = saved.Revision
	cart.UpdatedAt = saved.UpdatedAt
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID primitive.ObjectID, revision int64) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "revision": revision},
		bson.M{
			"$set": bson.M{"products": []models.CartItem{}, "updatedAt": time.Now()},
			"$inc": bson.M{"revision": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrConflict
	}
	return nil
}
