package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client je odběratel, pro kterého se eviduje práce a vystavují faktury.
type Client struct {
	ID         string
	UserID     string
	Name       string
	Address    string
	ICO        string // IČO — identifikační číslo osoby
	HourlyRate *decimal.Decimal // volitelná výchozí sazba klienta
	Note       string
	CreatedAt  time.Time
}
