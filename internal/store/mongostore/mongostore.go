// Package mongostore implements the store ports on MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection        = "users"
	productsCollection     = "products"
	cartsCollection        = "carts"
	ordersCollection       = "orders"
	wishlistsCollection    = "wishlists"
	contactsCollection     = "contacts"
	testimonialsCollection = "testimonials"
)

// Stores bundles every collection-backed store of one database.
type Stores struct {
	Users        *UserStore
	Products     *ProductStore
	Carts        *CartStore
	Orders       *OrderStore
	Wishlists    *WishlistStore
	Contacts     *ContactStore
	Testimonials *TestimonialStore
}

func New(db *mongo.Database) *Stores {
	return &Stores{
		Users:        &UserStore{coll: db.Collection(usersCollection)},
		Products:     &ProductStore{coll: db.Collection(productsCollection)},
		Carts:        &CartStore{coll: db.Collection(cartsCollection)},
		Orders:       &OrderStore{coll: db.Collection(ordersCollection)},
		Wishlists:    &WishlistStore{coll: db.Collection(wishlistsCollection)},
		Contacts:     &ContactStore{coll: db.Collection(contactsCollection)},
		Testimonials: &TestimonialStore{coll: db.Collection(testimonialsCollection)},
	}
}

// EnsureIndexes creates the indexes the stores rely on for uniqueness and
// ordering. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "isTrending", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		cartsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "cartRevision", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		wishlistsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		contactsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		testimonialsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// withUser joins the owning user's public fields onto each document.
func withUser(localField string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "user.password", Value: 0}}}},
	}
}

func sortNewest() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}}
}
