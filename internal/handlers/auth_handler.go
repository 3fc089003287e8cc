package handlers

import (
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request services.RegisterInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request services.LoginInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Logged in", session)
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	user, err := h.auth.Profile(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", user)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	var request services.ProfileInput
	if err := parseBody(c, &request); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), caller, request)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Profile updated", user)
}
