package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contacts *services.ContactService
}

func NewContactHandler(contacts *services.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request struct {
		Message string `json:"message"`
	}
	if err := parseBody(c, &request); err != nil {
		return err
	}

	contact, err := h.contacts.Create(c.UserContext(), caller, request.Message)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Message sent successfully", contact)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contacts.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondList(c, "All messages", contacts)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id", "message")
	if err != nil {
		return err
	}

	if err := h.contacts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Message deleted", nil)
}

func (h *ContactHandler) DeleteAll(c *fiber.Ctx) error {
	n, err := h.contacts.DeleteAll(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "All messages deleted", fiber.Map{"deletedCount": n})
}
