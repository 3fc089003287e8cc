package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout policy values.
const (
	MissingSkip   = "skip"
	MissingReject = "reject"
	MissingZero   = "zero"
)

type OrderService struct {
	carts    store.CartStore
	orders   store.OrderStore
	products store.ProductStore
	tx       store.TxRunner
	policy   config.CheckoutConfig
	log      *logger.Logger
}

func NewOrderService(carts store.CartStore, orders store.OrderStore, products store.ProductStore, tx store.TxRunner, policy config.CheckoutConfig, log *logger.Logger) *OrderService {
	if tx == nil {
		tx = store.NoTx{}
	}
	if policy.MissingProduct == "" {
		policy.MissingProduct = MissingSkip
	}
	if policy.MissingSize == "" {
		policy.MissingSize = MissingZero
	}
	return &OrderService{
		carts:    carts,
		orders:   orders,
		products: products,
		tx:       tx,
		policy:   policy,
		log:      log.WithComponent("orders"),
	}
}

// Checkout turns the caller's cart into a pending order and empties the
// cart. An order is keyed by the cart revision it was built from, so calling
// Checkout again after a half-finished attempt returns the same order.
func (s *OrderService) Checkout(ctx context.Context, caller models.Caller) (*models.Order, error) {
	cart, err := s.carts.FindByUser(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.InvalidState("cart is empty")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load cart", err)
	}
	if len(cart.Products) == 0 {
		return nil, apperr.InvalidState("cart is empty")
	}

	if order, err := s.existingOrder(ctx, cart); order != nil || err != nil {
		return order, err
	}

	items, total, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:           primitive.NewObjectID(),
		UserID:       caller.UserID,
		Products:     items,
		TotalPrice:   total,
		Status:       models.OrderStatusPending,
		CartRevision: cart.Revision,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		return s.carts.Clear(ctx, caller.UserID, cart.Revision)
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrDuplicate):
		// A concurrent checkout of the same cart revision won.
		if order, rerr := s.existingOrder(ctx, cart); order != nil || rerr != nil {
			return order, rerr
		}
		return nil, apperr.Internal("failed to place order", err)
	case errors.Is(err, store.ErrConflict):
		s.log.Warn("cart changed during checkout", "user_id", caller.UserID.Hex(), "revision", cart.Revision)
		return nil, apperr.Conflict("cart changed during checkout, please try again")
	default:
		return nil, apperr.Internal("failed to place order", err)
	}

	s.log.Info("order placed",
		"order_id", order.ID.Hex(),
		"user_id", caller.UserID.Hex(),
		"lines", len(order.Products),
		"total", order.TotalPrice,
	)
	return order, nil
}

// existingOrder returns the order already derived from cart's current revision,
// clearing the cart if that step was lost. It returns nil, nil when there is
// no such order.
func (s *OrderService) existingOrder(ctx context.Context, cart *models.Cart) (*models.Order, error) {
	existing, err := s.orders.FindByCartRevision(ctx, cart.UserID, cart.Revision)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to look up order", err)
	}

	if err := s.carts.Clear(ctx, cart.UserID, cart.Revision); err != nil && !errors.Is(err, store.ErrConflict) {
		return nil, apperr.Internal("failed to clear cart", err)
	}
	s.log.Info("checkout recovered existing order", "order_id", existing.ID.Hex(), "revision", cart.Revision)
	return existing, nil
}

// snapshot prices every cart line from the current catalog, applying the
// configured policy to lines that no longer match it.
func (s *OrderService) snapshot(ctx context.Context, cart *models.Cart) ([]models.OrderItem, float64, error) {
	products, err := s.products.FindByIDs(ctx, cartProductIDs(cart))
	if err != nil {
		return nil, 0, apperr.Internal("failed to load products", err)
	}

	items := make([]models.OrderItem, 0, len(cart.Products))
	total := decimal.Zero

	for _, line := range cart.Products {
		product, ok := products[line.ProductID]
		if !ok {
			if s.policy.MissingProduct == MissingReject {
				return nil, 0, apperr.InvalidState("product %s is no longer available", line.ProductID.Hex())
			}
			continue
		}

		price, ok := product.PriceFor(line.Size)
		if !ok {
			switch s.policy.MissingSize {
			case MissingReject:
				return nil, 0, apperr.InvalidState("size %s of %s is no longer available", line.Size, product.Name)
			case MissingSkip:
				continue
			}
			price = 0
		}

		quantity := line.Quantity
		if quantity < 1 {
			quantity = 1
		}

		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))))
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Size:      line.Size,
			Price:     price,
			Quantity:  quantity,
		})
	}

	if len(items) == 0 {
		return nil, 0, apperr.InvalidState("no valid products in cart")
	}

	amount, _ := total.Float64()
	return items, amount, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return nil, apperr.InvalidArgument("status is required")
	}
	if !models.ValidOrderStatus(status) {
		return nil, apperr.InvalidArgument("invalid order status %q", status)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, storeErr(err, "order not found")
	}
	s.log.Info("order status updated", "order_id", id.Hex(), "status", status)
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, caller models.Caller) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

// GetOrder returns one order to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, caller models.Caller, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "order not found")
	}
	if order.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, apperr.Forbidden("order belongs to another user")
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return storeErr(err, "order not found")
	}
	s.log.Info("order deleted", "order_id", id.Hex())
	return nil
}

func (s *OrderService) DeleteAllOrders(ctx context.Context) (int64, error) {
	n, err := s.orders.DeleteAll(ctx)
	if err != nil {
		return 0, apperr.Internal("failed to delete orders", err)
	}
	s.log.Warn("all orders deleted", "count", n)
	return n, nil
}
