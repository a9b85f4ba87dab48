package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/application/timesheet"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// EntryHandler obsluhuje HTTP požadavky pracovních záznamů (chráněné).
type EntryHandler struct {
	uc *timesheet.EntryUseCase
}

// NewEntryHandler sestaví handler.
func NewEntryHandler(uc *timesheet.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// entryError mapuje doménové chyby záznamů na HTTP odpověď.
func entryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEntryAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ENTRY_ALREADY_CLAIMED", Message: "vyfakturovaný záznam nelze měnit"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// entryFilters přečte filtry z query parametrů.
func entryFilters(c *fiber.Ctx) (repository.EntryFilters, error) {
	f := repository.EntryFilters{
		ClientID:      c.Query("client_id"),
		PhaseID:       c.Query("phase_id"),
		ProjectID:     c.Query("project_id"),
		BillingStatus: c.Query("billing_status"),
	}
	var err error
	if f.DateFrom, err = parseDateQuery(c, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDateQuery(c, "date_to"); err != nil {
		return f, err
	}
	if y := c.Query("year"); y != "" {
		if f.Year, err = strconv.Atoi(y); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Create založí pracovní záznam; sazba se dopočte z fáze/klienta/nastavení.
// POST /api/entries
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	entry, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return entryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// List vypíše záznamy podle filtrů.
// GET /api/entries?client_id=&phase_id=&billing_status=&date_from=&date_to=&year=
func (h *EntryHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	f, err := entryFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "neplatný filtr"})
	}
	entries, err := h.uc.List(c.Context(), userID, f)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(entries)
}

// Stats vrátí součty odpracovaného času a částek za období.
// GET /api/entries/stats
func (h *EntryHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	f, err := entryFilters(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "neplatný filtr"})
	}
	stats, err := h.uc.Stats(c.Context(), userID, f)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(stats)
}

// GetByID vrátí jeden záznam.
// GET /api/entries/:id
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	entry, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(entry)
}

// Update přepíše záznam; vyfakturované záznamy jsou jen ke čtení.
// PUT /api/entries/:id
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	entry, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(entry)
}

// Delete smaže záznam; vyfakturované záznamy mazat nelze.
// DELETE /api/entries/:id
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
