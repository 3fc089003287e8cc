package handlers

import (
	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	carts *services.CartService
}

func NewCartHandler(carts *services.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

func (r cartRequest) validate() error {
	if r.ProductID == "" || r.Size == "" {
		return apperr.InvalidArgument("product ID and size are required")
	}
	return nil
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request cartRequest
	if err := parseBody(c, &request); err != nil {
		return err
	}
	if err := request.validate(); err != nil {
		return err
	}
	productID, err := services.ParseID(request.ProductID, "product")
	if err != nil {
		return err
	}
	quantity := 1
	if request.Quantity != nil {
		quantity = *request.Quantity
	}

	cart, err := h.carts.AddItem(c.UserContext(), caller, productID, request.Size, quantity)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product added to cart", cart)
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	lines, err := h.carts.GetCart(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return respondList(c, "", lines)
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request cartRequest
	if err := parseBody(c, &request); err != nil {
		return err
	}
	if err := request.validate(); err != nil {
		return err
	}
	if request.Quantity == nil {
		return apperr.InvalidArgument("quantity is required")
	}
	productID, err := services.ParseID(request.ProductID, "product")
	if err != nil {
		return err
	}

	cart, err := h.carts.UpdateQuantity(c.UserContext(), caller, productID, request.Size, *request.Quantity)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Quantity updated successfully", cart)
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request cartRequest
	if err := parseBody(c, &request); err != nil {
		return err
	}
	if err := request.validate(); err != nil {
		return err
	}
	productID, err := services.ParseID(request.ProductID, "product")
	if err != nil {
		return err
	}

	cart, err := h.carts.RemoveItem(c.UserContext(), caller, productID, request.Size)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Item removed from cart", cart)
}
