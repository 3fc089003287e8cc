package services

import (
	"context"
	"testing"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateContactPublishesEvent(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	ann := env.user(t, "Ann")

	contact, err := env.contacts.Create(ctx, ann, "  where is my order?  ")
	require.NoError(t, err)
	assert.Equal(t, "where is my order?", contact.Message)

	require.Len(t, env.publisher.events, 1)
	ev := env.publisher.events[0]
	assert.Equal(t, realtime.EventNewContact, ev.name)
	assert.Equal(t, ContactNotification{
		Message:   NewContactNotice,
		UserID:    ann.UserID.Hex(),
		ContactID: contact.ID.Hex(),
	}, ev.data)

	list, err := env.contacts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, "Ann", list[0].User.Name)
}

func TestCreateContactRejectsBlank(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	_, err := env.contacts.Create(context.Background(), env.user(t, "Ann"), "   ")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
	assert.Empty(t, env.publisher.events)
}

func TestDeleteContacts(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	ann := env.user(t, "Ann")

	c, err := env.contacts.Create(ctx, ann, "one")
	require.NoError(t, err)
	_, err = env.contacts.Create(ctx, ann, "two")
	require.NoError(t, err)

	require.NoError(t, env.contacts.Delete(ctx, c.ID))
	assert.True(t, apperr.Is(env.contacts.Delete(ctx, c.ID), apperr.KindNotFound))

	n, err := env.contacts.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestTestimonials(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	ann := env.user(t, "Ann")
	bob := env.user(t, "Bob")

	_, err := env.testimonials.Create(ctx, ann, TestimonialInput{Comment: "great", Rating: 7})
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
	_, err = env.testimonials.Create(ctx, ann, TestimonialInput{Comment: " ", Rating: 4})
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))

	tm, err := env.testimonials.Create(ctx, ann, TestimonialInput{Comment: "great", Rating: 4})
	require.NoError(t, err)

	_, err = env.testimonials.Update(ctx, bob, tm.ID, TestimonialInput{Comment: "meh", Rating: 2})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	updated, err := env.testimonials.Update(ctx, ann, tm.ID, TestimonialInput{Comment: "superb", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "superb", updated.Comment)

	list, err := env.testimonials.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5.0, list[0].Rating)

	_, err = env.testimonials.Delete(ctx, admin(), primitive.NewObjectID())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	deleted, err := env.testimonials.Delete(ctx, admin(), tm.ID)
	require.NoError(t, err)
	assert.Equal(t, tm.ID, deleted.ID)

	_, err = env.testimonials.Create(ctx, bob, TestimonialInput{Comment: "ok", Rating: 3})
	require.NoError(t, err)
	n, err := env.testimonials.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestWishlist(t *testing.T) {
	env := newTestEnv(t, config.CheckoutConfig{})
	ctx := context.Background()
	ann := env.user(t, "Ann")
	a := env.product(t, "a", models.SizePrice{Size: "m", Price: 1})
	b := env.product(t, "b", models.SizePrice{Size: "m", Price: 1})

	empty, err := env.wishlists.Get(ctx, ann)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, env.wishlists.Add(ctx, ann, a.ID))
	require.NoError(t, env.wishlists.Add(ctx, ann, a.ID))
	require.NoError(t, env.wishlists.Add(ctx, ann, b.ID))
	assert.True(t, apperr.Is(env.wishlists.Add(ctx, ann, primitive.NewObjectID()), apperr.KindNotFound))

	list, err := env.wishlists.Get(ctx, ann)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)

	require.NoError(t, env.wishlists.Remove(ctx, ann, a.ID))
	require.NoError(t, env.wishlists.Remove(ctx, ann, a.ID))
	list, err = env.wishlists.Get(ctx, ann)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
}
