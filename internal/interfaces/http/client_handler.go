package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/application/timesheet"
	"github.com/mkadlec/fakturace-api/internal/domain"
)

// ClientHandler obsluhuje HTTP požadavky klientů a fází (chráněné).
type ClientHandler struct {
	uc *timesheet.ClientUseCase
}

// NewClientHandler sestaví handler.
func NewClientHandler(uc *timesheet.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

func clientError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create založí klienta.
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	client, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return clientError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List vypíše klienty uživatele.
// GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	clients, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(clients)
}

// GetByID vrátí jednoho klienta.
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	client, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(client)
}

// Update přepíše klienta.
// PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	client, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(client)
}

// CreatePhase založí fázi klienta.
// POST /api/clients/:id/phases
func (h *ClientHandler) CreatePhase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	clientID := c.Params("id")
	if clientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id klienta"})
	}
	var in dto.CreatePhaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	phase, err := h.uc.CreatePhase(c.Context(), userID, clientID, in)
	if err != nil {
		return clientError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(phase)
}

// ListPhases vypíše fáze klienta.
// GET /api/clients/:id/phases
func (h *ClientHandler) ListPhases(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	clientID := c.Params("id")
	if clientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id klienta"})
	}
	phases, err := h.uc.ListPhases(c.Context(), userID, clientID)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(phases)
}
