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

type OrderStore struct {
	coll *mongo.Collection
}

var _ store.OrderStore = (*OrderStore)(nil)

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	// The joined user is a read-side projection only.
	doc := *order
	doc.User = nil
	_, err := s.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrderStore) FindByCartRevision(ctx context.Context, userID primitive.ObjectID, revision int64) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, bson.M{"userId": userID, "cartRevision": revision}).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll returns every order, newest first, with the buyer's contact details.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	pipeline := append(mongo.Pipeline{sortNewest()}, withUser("userId")...)
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *OrderStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
