package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the admin-only user directory and catalog reports.
type AdminHandler struct {
	auth     *services.AuthService
	products *services.ProductService
}

func NewAdminHandler(auth *services.AuthService, products *services.ProductService) *AdminHandler {
	return &AdminHandler{auth: auth, products: products}
}

// List all users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "All users", users)
}

// Get user details by ID
func (h *AdminHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "user")
	if err != nil {
		return err
	}

	user, err := h.auth.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", user)
}

func (h *AdminHandler) CategoryStats(c *fiber.Ctx) error {
	out, err := h.products.CategoryCounts(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", out)
}

func (h *AdminHandler) RatingStats(c *fiber.Ctx) error {
	out, err := h.products.Ratings(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", out)
}

func (h *AdminHandler) MonthlyStats(c *fiber.Ctx) error {
	out, err := h.products.MonthlyCounts(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", out)
}

func (h *AdminHandler) SizeStats(c *fiber.Ctx) error {
	out, err := h.products.SizeCounts(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "", out)
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.products.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", d)
}
