package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stavy faktury. "overdue" se v zápisové cestě nepoužívá — počítá se
// ze splatnosti při čtení (billing.IsOverdue); v enumu zůstává kvůli
// kompatibilitě uložených dat.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusIssued    = "issued"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusOverdue   = "overdue"
)

// Typ faktury: linked vzniká z pracovních záznamů, standalone má volné položky.
const (
	InvoiceTypeLinked     = "linked"
	InvoiceTypeStandalone = "standalone"
)

// Invoice je hlavička faktury.
// Invariant při vytvoření: TotalAmount = Subtotal + TaxAmount,
// TaxAmount = Subtotal × TaxRate / 100.
type Invoice struct {
	ID     string
	UserID string

	// Odběratel: u linked faktury povinný ClientID, u standalone může být nil
	// a místo něj se použije textový snapshot (ClientName/Address/ICO).
	ClientID      *string
	ClientName    string
	ClientAddress string
	ClientICO     string

	InvoiceNumber string // <rok>-<pořadí>, unikátní v rámci roku
	IssueDate     time.Time
	DueDate       time.Time
	InvoiceType   string
	Status        string

	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal // v procentech, 0 = neplátce DPH
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	Currency    string

	VariableSymbol string // variabilní symbol pro párování platby
	BankAccount    string
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
	PaidAt    *time.Time // nastaveno pouze při přechodu do paid
}
