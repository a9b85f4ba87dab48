package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings jsou uživatelská nastavení — výchozí hodnoty pro záznamy a faktury.
type Settings struct {
	UserID            string
	DefaultHourlyRate decimal.Decimal
	Currency          string
	CompanyName       string
	CompanyAddress    string
	CompanyICO        string
	CompanyDIC        string // DIČ — daňové identifikační číslo
	BankAccount       string // formát (předčíslí-)číslo/kód banky
	DefaultDueDays    int
	DefaultTaxRate    decimal.Decimal
	UpdatedAt         time.Time
}
