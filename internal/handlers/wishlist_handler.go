package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	wishlists *services.WishlistService
}

func NewWishlistHandler(wishlists *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	products, err := h.wishlists.Get(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return respondList(c, "", products)
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		return err
	}

	if err := h.wishlists.Add(c.UserContext(), caller, productID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Added to wishlist", nil)
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId", "product")
	if err != nil {
		return err
	}

	if err := h.wishlists.Remove(c.UserContext(), caller, productID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Removed from wishlist", nil)
}
