package services

import (
	"context"
	"testing"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddItemMergesQuantities(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	p := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10})

	_, err := env.carts.AddItem(ctx, caller, p.ID, "m", 2)
	require.NoError(t, err)
	cart, err := env.carts.AddItem(ctx, caller, p.ID, "medium", 3)
	require.NoError(t, err)

	require.Len(t, cart.Products, 1)
	assert.Equal(t, 5, cart.Products[0].Quantity)
	assert.Equal(t, "m", cart.Products[0].Size)
}

func TestAddItemSeparateLinesPerSize(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	p := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10}, models.SizePrice{Size: "l", Price: 12})

	_, err := env.carts.AddItem(ctx, caller, p.ID, "m", 1)
	require.NoError(t, err)
	cart, err := env.carts.AddItem(ctx, caller, p.ID, "l", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Products, 2)
}

func TestAddItemValidation(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	p := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10})

	tests := []struct {
		name      string
		productID primitive.ObjectID
		size      string
		quantity  int
		kind      apperr.Kind
	}{
		{"zero quantity", p.ID, "m", 0, apperr.KindInvalidArgument},
		{"negative quantity", p.ID, "m", -1, apperr.KindInvalidArgument},
		{"size not sold", p.ID, "l", 1, apperr.KindInvalidArgument},
		{"unknown size", p.ID, "xl", 1, apperr.KindInvalidArgument},
		{"missing product", primitive.NewObjectID(), "m", 1, apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.carts.AddItem(ctx, caller, tt.productID, tt.size, tt.quantity)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestGetCartWithoutCartIsEmpty(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	lines, err := env.carts.GetCart(context.Background(), env.user(t, "Ann"))
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestGetCartUsesLivePrices(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	tee := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10}, models.SizePrice{Size: "l", Price: 12})
	hat := env.product(t, "cap", models.SizePrice{Size: "s", Price: 5})
	gone := env.product(t, "gone", models.SizePrice{Size: "s", Price: 1})

	for _, add := range []struct {
		id   primitive.ObjectID
		size string
	}{{tee.ID, "m"}, {tee.ID, "l"}, {hat.ID, "s"}, {gone.ID, "s"}} {
		_, err := env.carts.AddItem(ctx, caller, add.id, add.size, 1)
		require.NoError(t, err)
	}

	tee.Sizes = []models.SizePrice{{Size: "m", Price: 15}}
	env.stores.Products.Put(*tee)
	require.NoError(t, env.stores.Products.Delete(ctx, gone.ID))

	lines, err := env.carts.GetCart(ctx, caller)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, 15.0, lines[0].Price)
	assert.Equal(t, "tee", lines[0].Name)
	assert.Equal(t, 0.0, lines[1].Price, "size no longer sold is priced at zero")
	assert.Equal(t, "cap", lines[2].Name)
}

func TestUpdateQuantity(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	p := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10})

	_, err := env.carts.UpdateQuantity(ctx, caller, p.ID, "m", 2)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "no cart yet")

	_, err = env.carts.AddItem(ctx, caller, p.ID, "m", 1)
	require.NoError(t, err)

	cart, err := env.carts.UpdateQuantity(ctx, caller, p.ID, "m", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Products[0].Quantity)

	_, err = env.carts.UpdateQuantity(ctx, caller, p.ID, "l", 2)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "line absent")

	_, err = env.carts.UpdateQuantity(ctx, caller, p.ID, "m", 0)
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	caller := env.user(t, "Ann")
	p := env.product(t, "tee", models.SizePrice{Size: "m", Price: 10})

	_, err := env.carts.RemoveItem(ctx, caller, p.ID, "m")
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "no cart yet")

	_, err = env.carts.AddItem(ctx, caller, p.ID, "m", 1)
	require.NoError(t, err)

	cart, err := env.carts.RemoveItem(ctx, caller, p.ID, "m")
	require.NoError(t, err)
	assert.Empty(t, cart.Products)

	cart, err = env.carts.RemoveItem(ctx, caller, p.ID, "m")
	require.NoError(t, err)
	assert.Empty(t, cart.Products)
}
