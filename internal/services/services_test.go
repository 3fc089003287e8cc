package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/storage"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/arzan03/StoreFront/internal/store/storetest"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryImages struct {
	mu    sync.Mutex
	saved map[string]string
}

func (m *memoryImages) Save(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	url := "/uploads/" + storage.ObjectName(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[url] = string(data)
	return url, nil
}

type recordedEvent struct {
	name string
	data any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, data any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{event, data})
}

type testEnv struct {
	stores    *storetest.Stores
	images    *memoryImages
	publisher *recordingPublisher

	auth         *AuthService
	carts        *CartService
	orders       *OrderService
	products     *ProductService
	wishlists    *WishlistService
	contacts     *ContactService
	testimonials *TestimonialService
}

func newTestEnv(t *testing.T, policy config.CheckoutConfig) *testEnv {
	t.Helper()
	log := logger.Discard()
	s := storetest.New()
	env := &testEnv{
		stores:    s,
		images:    &memoryImages{saved: map[string]string{}},
		publisher: &recordingPublisher{},
	}
	env.auth = NewAuthService(s.Users, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}, log)
	env.carts = NewCartService(s.Carts, s.Products, log)
	env.orders = NewOrderService(s.Carts, s.Orders, s.Products, store.NoTx{}, policy, log)
	env.products = NewProductService(s.Products, s.Users, env.images, log)
	env.wishlists = NewWishlistService(s.Wishlists, s.Products, log)
	env.contacts = NewContactService(s.Contacts, env.publisher, log)
	env.testimonials = NewTestimonialService(s.Testimonials, log)
	return env
}

func (e *testEnv) user(t *testing.T, name string) models.Caller {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "secret123",
		Phone:    "0100",
	})
	require.NoError(t, err)
	return models.Caller{UserID: u.ID, Role: u.Role}
}

func (e *testEnv) product(t *testing.T, name string, sizes ...models.SizePrice) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Category:  "shirts",
		Sizes:     sizes,
		Images:    []string{"/uploads/" + name + ".png"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.stores.Products.Create(context.Background(), p))
	return p
}

func admin() models.Caller {
	return models.Caller{UserID: primitive.NewObjectID(), Role: models.RoleAdmin}
}
