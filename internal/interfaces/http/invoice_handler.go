package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mkadlec/fakturace-api/internal/application/billing"
	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// InvoiceHandler obsluhuje HTTP požadavky fakturace (chráněné).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler sestaví handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// invoiceError mapuje doménové chyby fakturace na HTTP odpověď.
func invoiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvoiceNotFound), errors.Is(err, domain.ErrEntryNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNoBillableEntries):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_BILLABLE_ENTRIES", Message: "žádné záznamy k vyfakturování"})
	case errors.Is(err, domain.ErrEntryAlreadyClaimed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ENTRY_ALREADY_CLAIMED", Message: "záznam už je připojen k jiné faktuře"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "nepovolený přechod stavu faktury"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create vytvoří fakturu z vybraných nevyfakturovaných záznamů.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	var in dto.CreateLinkedInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	invoice, err := h.uc.CreateLinkedInvoice(c.Context(), userID, in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// CreateStandalone vytvoří fakturu s volnými položkami bez vazby na záznamy.
// POST /api/invoices/standalone
func (h *InvoiceHandler) CreateStandalone(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	var in dto.CreateStandaloneInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	invoice, err := h.uc.CreateStandaloneInvoice(c.Context(), userID, in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List vypíše faktury podle filtrů.
// GET /api/invoices?client_id=&status=&type=&date_from=&date_to=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	f := repository.InvoiceFilters{
		ClientID:    c.Query("client_id"),
		Status:      c.Query("status"),
		InvoiceType: c.Query("type"),
	}
	var err error
	if f.DateFrom, err = parseDateQuery(c, "date_from"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from: očekává se YYYY-MM-DD"})
	}
	if f.DateTo, err = parseDateQuery(c, "date_to"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to: očekává se YYYY-MM-DD"})
	}
	invoices, err := h.uc.ListInvoices(c.Context(), userID, f)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoices)
}

// Stats vrátí souhrn faktur podle stavu.
// GET /api/invoices/stats
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	stats, err := h.uc.GetStats(c.Context(), userID)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(stats)
}

// UnbilledEntries vypíše nevyfakturované záznamy, volitelně pro klienta.
// GET /api/invoices/unbilled-entries?client_id=
func (h *InvoiceHandler) UnbilledEntries(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	entries, err := h.uc.GetUnbilledEntries(c.Context(), userID, c.Query("client_id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(entries)
}

// GetByID vrátí fakturu včetně položek.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	invoice, err := h.uc.GetInvoice(c.Context(), userID, id)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoice)
}

// UpdateStatus změní stav faktury; na "paid" kaskáduje na záznamy.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "neplatné tělo požadavku"})
	}
	invoice, err := h.uc.UpdateStatus(c.Context(), userID, id, in.Status)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoice)
}

// Delete smaže fakturu a uvolní připojené záznamy zpět na unbilled.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "neplatný token"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "chybí id"})
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return invoiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDateQuery přečte volitelný datumový query parametr.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	s := c.Query(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
