//go:build integration

package mongostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arzan03/StoreFront/internal/db"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) *mongo.Database {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start mongo container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := db.ConnectMongoDB(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), logger.Discard())
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("disconnect: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	database := client.Database("storefront_test")
	require.NoError(t, EnsureIndexes(ctx, database))
	return database
}

func TestMongoStores(t *testing.T) {
	database := setupTestDB(t)
	stores := New(database)
	ctx := context.Background()

	user := &models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleUser, CreatedAt: time.Now()}
	require.NoError(t, stores.Users.Create(ctx, user))

	t.Run("duplicate email", func(t *testing.T) {
		err := stores.Users.Create(ctx, &models.User{Name: "Other", Email: "ann@example.com"})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	product := &models.Product{
		Name:      "Tee",
		Category:  "shirts",
		Sizes:     []models.SizePrice{{Size: models.SizeMedium, Price: 10}},
		Images:    []string{"/uploads/tee.png"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, stores.Products.Create(ctx, product))

	t.Run("cart revision guard", func(t *testing.T) {
		cart := &models.Cart{UserID: user.ID, Products: []models.CartItem{{ProductID: product.ID, Size: "m", Quantity: 2}}}
		require.NoError(t, stores.Carts.Save(ctx, cart))
		assert.EqualValues(t, 1, cart.Revision)

		assert.ErrorIs(t, stores.Carts.Clear(ctx, user.ID, cart.Revision+5), store.ErrConflict)
		require.NoError(t, stores.Carts.Clear(ctx, user.ID, cart.Revision))

		got, err := stores.Carts.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Products)
	})

	t.Run("one order per cart revision", func(t *testing.T) {
		order := &models.Order{UserID: user.ID, CartRevision: 7, Status: models.OrderStatusPending, CreatedAt: time.Now()}
		require.NoError(t, stores.Orders.Create(ctx, order))
		err := stores.Orders.Create(ctx, &models.Order{UserID: user.ID, CartRevision: 7})
		assert.ErrorIs(t, err, store.ErrDuplicate)

		all, err := stores.Orders.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.NotNil(t, all[0].User)
		assert.Equal(t, "ann@example.com", all[0].User.Email)
	})

	t.Run("review writes keep the average in the same update", func(t *testing.T) {
		review := models.Review{ID: primitive.NewObjectID(), UserID: user.ID, Rating: 4, Comment: "$5 well spent", CreatedAt: time.Now()}
		require.NoError(t, stores.Products.AppendReview(ctx, product.ID, review))
		assert.ErrorIs(t, stores.Products.AppendReview(ctx, product.ID, review), store.ErrDuplicate)
		assert.ErrorIs(t, stores.Products.AppendReview(ctx, primitive.NewObjectID(), review), store.ErrNotFound)

		other := models.Review{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Rating: 2, CreatedAt: time.Now()}
		require.NoError(t, stores.Products.AppendReview(ctx, product.ID, other))

		got, err := stores.Products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, got.Reviews, 2)
		assert.Equal(t, "$5 well spent", got.Reviews[0].Comment)
		assert.Equal(t, 3.0, got.AverageRating)

		rating := 5.0
		assert.ErrorIs(t, stores.Products.UpdateReview(ctx, product.ID, review.ID, other.UserID, store.ReviewEdit{Rating: &rating}), store.ErrNotFound)
		require.NoError(t, stores.Products.UpdateReview(ctx, product.ID, review.ID, user.ID, store.ReviewEdit{Rating: &rating}))

		got, err = stores.Products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 5.0, got.Reviews[0].Rating)
		assert.Equal(t, "$5 well spent", got.Reviews[0].Comment)
		assert.Equal(t, 3.5, got.AverageRating)

		require.NoError(t, stores.Products.RemoveReview(ctx, product.ID, other.ID, other.UserID))
		assert.ErrorIs(t, stores.Products.RemoveReview(ctx, product.ID, other.ID, other.UserID), store.ErrNotFound)
		require.NoError(t, stores.Products.RemoveReview(ctx, product.ID, review.ID, user.ID))

		got, err = stores.Products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Reviews)
		assert.Zero(t, got.AverageRating)
	})

	t.Run("reports", func(t *testing.T) {
		byCategory, err := stores.Products.CountByCategory(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.CategoryCount{{Category: "shirts", Count: 1}}, byCategory)

		bySize, err := stores.Products.CountBySize(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.SizeCount{{Size: "m", Count: 1}}, bySize)

		monthly, err := stores.Products.MonthlyCreated(ctx)
		require.NoError(t, err)
		require.Len(t, monthly, 1)
		assert.Equal(t, 1, monthly[0].Count)
	})
}
