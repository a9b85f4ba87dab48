package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stavy fakturace pracovního záznamu.
// Invariant: unbilled právě tehdy, když InvoiceID je nil.
const (
	BillingUnbilled = "unbilled"
	BillingBilled   = "billed"
	BillingPaid     = "paid"
)

// Entry je jeden záznam odvedené práce.
type Entry struct {
	ID              string
	UserID          string
	ClientID        string
	PhaseID         *string
	ProjectID       *string
	Date            time.Time // den práce, bez času
	StartTime       string    // "HH:MM"
	EndTime         string    // "HH:MM"
	DurationMinutes int       // odvozeno ze StartTime/EndTime
	Description     string
	HourlyRate      decimal.Decimal
	BillingStatus   string
	InvoiceID       *string
	CreatedAt       time.Time

	// PhaseName z LEFT JOIN na phases; jen pro čtení (popisy položek faktury).
	PhaseName string
}

// Hours vrací odpracovaný čas v hodinách (minuty/60, bez zaokrouhlení).
func (e *Entry) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(e.DurationMinutes)).Div(decimal.NewFromInt(60))
}

// Amount vrací částku záznamu: hodiny × hodinová sazba.
func (e *Entry) Amount() decimal.Decimal {
	return e.Hours().Mul(e.HourlyRate)
}
