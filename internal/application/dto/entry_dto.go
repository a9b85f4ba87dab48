package dto

import "github.com/shopspring/decimal"

// CreateEntryRequest body pro POST /api/entries.
// DurationMinutes se neposílá — odvozuje se ze StartTime/EndTime.
// HourlyRate je volitelná; jinak platí sazba fáze > klienta > výchozí.
type CreateEntryRequest struct {
	ClientID    string           `json:"client_id"`
	PhaseID     string           `json:"phase_id,omitempty"`
	ProjectID   string           `json:"project_id,omitempty"`
	Date        string           `json:"date"`
	StartTime   string           `json:"start_time"` // "HH:MM"
	EndTime     string           `json:"end_time"`   // "HH:MM"
	Description string           `json:"description"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// UpdateEntryRequest body pro PUT /api/entries/:id.
type UpdateEntryRequest struct {
	PhaseID     string           `json:"phase_id,omitempty"`
	ProjectID   string           `json:"project_id,omitempty"`
	Date        string           `json:"date"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	Description string           `json:"description"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// EntryResponse pracovní záznam v odpovědích.
type EntryResponse struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	PhaseID         string          `json:"phase_id,omitempty"`
	PhaseName       string          `json:"phase_name,omitempty"`
	ProjectID       string          `json:"project_id,omitempty"`
	Date            string          `json:"date"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	DurationMinutes int             `json:"duration_minutes"`
	Description     string          `json:"description"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Amount          decimal.Decimal `json:"amount"`
	BillingStatus   string          `json:"billing_status"`
	InvoiceID       string          `json:"invoice_id,omitempty"`
}

// EntryStatsResponse souhrn záznamů za období pro GET /api/entries/stats.
type EntryStatsResponse struct {
	TotalMinutes int             `json:"total_minutes"`
	Hours        int             `json:"hours"`
	Minutes      int             `json:"minutes"`
	Amount       decimal.Decimal `json:"amount"`
	Count        int             `json:"count"`
}
