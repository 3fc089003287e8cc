package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Checkout(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Order placed successfully", order)
}

func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.GetUserOrders(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return respondList(c, "", orders)
}

func (h *OrderHandler) AllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "All orders retrieved successfully", orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "order")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Order details retrieved", order)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "order")
	if err != nil {
		return err
	}
	var request struct {
		Status string `json:"status"`
	}
	if err := parseBody(c, &request); err != nil {
		return err
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), id, request.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Order status updated", order)
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "order")
	if err != nil {
		return err
	}

	if err := h.orders.DeleteOrder(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Order deleted", nil)
}

func (h *OrderHandler) DeleteAllOrders(c *fiber.Ctx) error {
	n, err := h.orders.DeleteAllOrders(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "All orders have been deleted", fiber.Map{"deletedCount": n})
}
