package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stavy fáze/projektu.
const (
	PhaseStatusActive    = "active"
	PhaseStatusCompleted = "completed"
	PhaseStatusPaused    = "paused"
)

// Phase je volitelné členění práce pro klienta s vlastní sazbou.
type Phase struct {
	ID          string
	UserID      string
	ClientID    string
	Name        string
	Description string
	HourlyRate  *decimal.Decimal // přebíjí sazbu klienta, pokud je vyplněna
	Status      string
	CreatedAt   time.Time
}

// Project je alternativní členění práce vedle fází; stejná struktura i sazby.
type Project struct {
	ID          string
	UserID      string
	ClientID    string
	Name        string
	Description string
	HourlyRate  *decimal.Decimal
	Status      string
	CreatedAt   time.Time
}
