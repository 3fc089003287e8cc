// Package store declares the persistence ports the services depend on.
// mongostore implements them against MongoDB; storetest keeps them in memory.
package store

import (
	"context"
	"errors"

	"github.com/arzan03/StoreFront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
	// ErrConflict means a guarded write found the document in another state.
	ErrConflict = errors.New("document changed concurrently")
)

// ReviewEdit carries the review fields to overwrite; nil leaves a field as is.
type ReviewEdit struct {
	Rating  *float64
	Comment *string
}

type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error)
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]models.Product, error)
	FirstPerCategory(ctx context.Context) ([]models.Product, error)
	Trending(ctx context.Context, limit int) ([]models.Product, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, category string) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// The review writes change one review in place and recompute
	// averageRating in the same update, so concurrent writers never
	// overwrite each other's reviews.

	// AppendReview adds review unless its author already reviewed the
	// product, in which case it returns ErrDuplicate.
	AppendReview(ctx context.Context, productID primitive.ObjectID, review models.Review) error
	// UpdateReview and RemoveReview return ErrNotFound unless userID owns
	// reviewID on the product.
	UpdateReview(ctx context.Context, productID, reviewID, userID primitive.ObjectID, edit ReviewEdit) error
	RemoveReview(ctx context.Context, productID, reviewID, userID primitive.ObjectID) error

	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)
	Ratings(ctx context.Context) ([]models.ProductRating, error)
	MonthlyCreated(ctx context.Context) ([]models.MonthlyCount, error)
	CountBySize(ctx context.Context) ([]models.SizeCount, error)
}

type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	// Save upserts the user's line items and bumps the revision; cart is
	// refreshed with the stored id and revision.
	Save(ctx context.Context, cart *models.Cart) error
	// Clear empties the cart if it is still at revision, else ErrConflict.
	Clear(ctx context.Context, userID primitive.ObjectID, revision int64) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByCartRevision(ctx context.Context, userID primitive.ObjectID, revision int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
}

type WishlistStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error)
	Add(ctx context.Context, userID, productID primitive.ObjectID) error
	Remove(ctx context.Context, userID, productID primitive.ObjectID) error
}

type ContactStore interface {
	Create(ctx context.Context, contact *models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
}

type TestimonialStore interface {
	Create(ctx context.Context, t *models.Testimonial) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error)
	List(ctx context.Context) ([]models.Testimonial, error)
	Update(ctx context.Context, t *models.Testimonial) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// TxRunner runs fn so that its writes commit or roll back together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NoTx runs fn directly. Used against standalone servers that cannot run
// multi-document transactions.
type NoTx struct{}

func (NoTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
