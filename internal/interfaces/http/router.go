package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkadlec/fakturace-api/internal/application/billing"
	"github.com/mkadlec/fakturace-api/internal/application/timesheet"
)

// RouterDeps závislosti routeru.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	EntryUC    *timesheet.EntryUseCase
	ClientUC   *timesheet.ClientUseCase
	SettingsUC *timesheet.SettingsUseCase
	JWTSecret  string
}

// Router zaregistruje cesty API. Všechno pod /api vyžaduje Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Faktury; konkrétní cesty musí být před /:id
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/standalone", invoiceHandler.CreateStandalone)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/stats", invoiceHandler.Stats)
	invoices.Get("/unbilled-entries", invoiceHandler.UnbilledEntries)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Pracovní záznamy
	entries := api.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/stats", entryHandler.Stats)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)

	// Klienti a fáze
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Post("/:id/phases", clientHandler.CreatePhase)
	clients.Get("/:id/phases", clientHandler.ListPhases)

	// Nastavení
	settings := api.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)
}
