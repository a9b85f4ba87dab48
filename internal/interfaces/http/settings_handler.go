package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/application/timesheet"
	"github.com/mkadlec/fakturace-api/internal/domain"
)

// SettingsHandler obsluhuje HTTP požadavky nastavení (chráněné).
type SettingsHandler struct {
	uc *timesheet.SettingsUseCase
}

// NewSettingsHandler sestaví handler.
func NewSettingsHandler(uc *timesheet.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get vrátí nastavení uživatele; chybějící řádek se nahradí výchozími hodnotami.
// GET /api/settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	settings, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(settings)
}

// Update upraví nastavení uživatele; nevyplněná pole zůstávají.
// PUT /api/settings
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	settings, err := h.uc.Update(c.Context(), userID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(settings)
}
