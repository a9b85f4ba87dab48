package dto

import "github.com/shopspring/decimal"

// CreateClientRequest body pro POST /api/clients (PUT /:id má stejný tvar).
type CreateClientRequest struct {
	Name       string           `json:"name"`
	Address    string           `json:"address,omitempty"`
	ICO        string           `json:"ico,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Note       string           `json:"note,omitempty"`
}

// ClientResponse klient v odpovědích.
type ClientResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Address    string           `json:"address,omitempty"`
	ICO        string           `json:"ico,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Note       string           `json:"note,omitempty"`
}

// CreatePhaseRequest body pro POST /api/clients/:id/phases.
type CreatePhaseRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status      string           `json:"status,omitempty"` // active | completed | paused
}

// PhaseResponse fáze v odpovědích.
type PhaseResponse struct {
	ID          string           `json:"id"`
	ClientID    string           `json:"client_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status      string           `json:"status"`
}
