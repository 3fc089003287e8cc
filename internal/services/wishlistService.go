package services

import (
	"context"
	"errors"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistService struct {
	wishlists store.WishlistStore
	products  store.ProductStore
	log       *logger.Logger
}

func NewWishlistService(wishlists store.WishlistStore, products store.ProductStore, log *logger.Logger) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, log: log.WithComponent("wishlist")}
}

// Get returns the wishlisted products that still exist, in the order they
// were added.
func (s *WishlistService) Get(ctx context.Context, caller models.Caller) ([]models.Product, error) {
	out := []models.Product{}

	list, err := s.wishlists.FindByUser(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to load wishlist", err)
	}

	products, err := s.products.FindByIDs(ctx, list.ProductIDs)
	if err != nil {
		return nil, apperr.Internal("failed to load products", err)
	}
	for _, id := range list.ProductIDs {
		if p, ok := products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *WishlistService) Add(ctx context.Context, caller models.Caller, productID primitive.ObjectID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return storeErr(err, "product not found")
	}
	if err := s.wishlists.Add(ctx, caller.UserID, productID); err != nil {
		return apperr.Internal("failed to update wishlist", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, caller models.Caller, productID primitive.ObjectID) error {
	err := s.wishlists.Remove(ctx, caller.UserID, productID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return apperr.Internal("failed to update wishlist", err)
	}
	return nil
}
