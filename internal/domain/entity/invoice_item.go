package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem je jedna položka faktury. Položky jsou po vytvoření faktury
// neměnné a zanikají spolu s ní (kaskáda).
// Invariant: TotalPrice = Quantity × UnitPrice.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	EntryID   *string // původní pracovní záznam (audit), u standalone nil
	PhaseID   *string
	Description string
	Quantity    decimal.Decimal
	Unit        string // "hod", "ks"
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	SortOrder   int
	CreatedAt   time.Time
}
