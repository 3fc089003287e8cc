package services

import (
	"context"
	"errors"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService struct {
	carts    store.CartStore
	products store.ProductStore
	log      *logger.Logger
}

func NewCartService(carts store.CartStore, products store.ProductStore, log *logger.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log.WithComponent("cart")}
}

// AddItem puts quantity units of (productID, size) into the caller's cart,
// merging with an existing line for the same pair.
func (s *CartService) AddItem(ctx context.Context, caller models.Caller, productID primitive.ObjectID, size string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperr.InvalidArgument("quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err, "product not found")
	}

	normalized, ok := models.ParseSize(size)
	if !ok || !product.HasSize(normalized) {
		return nil, apperr.InvalidArgument("invalid size for this product")
	}

	cart, err := s.loadCart(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(productID, normalized); i >= 0 {
		cart.Products[i].Quantity += quantity
	} else {
		cart.Products = append(cart.Products, models.CartItem{ProductID: productID, Size: normalized, Quantity: quantity})
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperr.Internal("failed to save cart", err)
	}
	s.log.Info("cart item added", "user_id", caller.UserID.Hex(), "product_id", productID.Hex(), "size", normalized)
	return cart, nil
}

// GetCart joins each line with the live catalog. Lines whose product is gone
// are left out; a size that is no longer sold is priced at 0.
func (s *CartService) GetCart(ctx context.Context, caller models.Caller) ([]models.CartLine, error) {
	lines := []models.CartLine{}

	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return lines, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to load cart", err)
	}

	products, err := s.products.FindByIDs(ctx, cartProductIDs(cart))
	if err != nil {
		return nil, apperr.Internal("failed to load products", err)
	}

	for _, item := range cart.Products {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		price, _ := product.PriceFor(item.Size)
		lines = append(lines, models.CartLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Images:      product.Images,
			Description: product.Description,
			Size:        item.Size,
			Quantity:    item.Quantity,
			Price:       price,
		})
	}
	return lines, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, caller models.Caller, productID primitive.ObjectID, size string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperr.InvalidArgument("quantity must be at least 1")
	}

	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storeErr(err, "cart not found")
	}

	i := cart.Find(productID, sizeOrRaw(size))
	if i < 0 {
		return nil, apperr.NotFound("product not found in cart")
	}
	cart.Products[i].Quantity = quantity

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperr.Internal("failed to save cart", err)
	}
	return cart, nil
}

// RemoveItem drops the (productID, size) line. Removing a line that is not
// there is not an error.
func (s *CartService) RemoveItem(ctx context.Context, caller models.Caller, productID primitive.ObjectID, size string) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if err != nil {
		return nil, storeErr(err, "cart not found")
	}

	i := cart.Find(productID, sizeOrRaw(size))
	if i < 0 {
		return cart, nil
	}
	cart.Products = append(cart.Products[:i], cart.Products[i+1:]...)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperr.Internal("failed to save cart", err)
	}
	return cart, nil
}

func (s *CartService) loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	switch {
	case err == nil:
		return cart, nil
	case errors.Is(err, store.ErrNotFound):
		return &models.Cart{UserID: userID, Products: []models.CartItem{}, UpdatedAt: time.Now()}, nil
	default:
		return nil, apperr.Internal("failed to load cart", err)
	}
}

func cartProductIDs(cart *models.Cart) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(cart.Products))
	seen := make(map[primitive.ObjectID]bool, len(cart.Products))
	for _, item := range cart.Products {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// sizeOrRaw normalises size when it is recognised and otherwise leaves it
// alone, so lookups for unknown labels simply miss.
func sizeOrRaw(size string) string {
	if normalized, ok := models.ParseSize(size); ok {
		return normalized
	}
	return size
}
