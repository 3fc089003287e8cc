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

type ContactStore struct {
	coll *mongo.Collection
}

var _ store.ContactStore = (*ContactStore)(nil)

func (s *ContactStore) Create(ctx context.Context, contact *models.Contact) error {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	doc := *contact
	doc.User = nil
	_, err := s.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (s *ContactStore) List(ctx context.Context) ([]models.Contact, error) {
	pipeline := append(mongo.Pipeline{sortNewest()}, withUser("userId")...)
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *ContactStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ContactStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

type TestimonialStore struct {
	coll *mongo.Collection
}

var _ store.TestimonialStore = (*TestimonialStore)(nil)

func (s *TestimonialStore) Create(ctx context.Context, t *models.Testimonial) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	doc := *t
	doc.User = nil
	_, err := s.coll.InsertOne(ctx, doc)
	return translate(err)
}

func (s *TestimonialStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *TestimonialStore) List(ctx context.Context) ([]models.Testimonial, error) {
	pipeline := append(mongo.Pipeline{sortNewest()}, withUser("userId")...)
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.Testimonial{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TestimonialStore) Update(ctx context.Context, t *models.Testimonial) error {
	t.UpdatedAt = time.Now()
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": t.ID},
		bson.M{"$set": bson.M{"comment": t.Comment, "rating": t.Rating, "updatedAt": t.UpdatedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *TestimonialStore) Delete(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}, options.FindOneAndDelete()).Decode(&t)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *TestimonialStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
