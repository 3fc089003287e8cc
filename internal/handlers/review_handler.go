package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler serves site testimonials under /api/reviews. Product reviews
// live on ProductHandler.
type ReviewHandler struct {
	testimonials *services.TestimonialService
}

func NewReviewHandler(testimonials *services.TestimonialService) *ReviewHandler {
	return &ReviewHandler{testimonials: testimonials}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request services.TestimonialInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	t, err := h.testimonials.Create(c.UserContext(), caller, request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Review added", t)
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	out, err := h.testimonials.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "All reviews", out)
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "review")
	if err != nil {
		return err
	}
	var request services.TestimonialInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	t, err := h.testimonials.Update(c.UserContext(), caller, id, request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review updated", t)
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "review")
	if err != nil {
		return err
	}

	t, err := h.testimonials.Delete(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review deleted", t)
}

func (h *ReviewHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.testimonials.DeleteAll(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "All reviews deleted", fiber.Map{"deletedCount": n})
}
