package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest body pro PUT /api/settings.
// Nil/prázdná pole se nemění.
type UpdateSettingsRequest struct {
	DefaultHourlyRate *decimal.Decimal `json:"default_hourly_rate,omitempty"`
	Currency          string           `json:"currency,omitempty"`
	CompanyName       string           `json:"company_name,omitempty"`
	CompanyAddress    string           `json:"company_address,omitempty"`
	CompanyICO        string           `json:"company_ico,omitempty"`
	CompanyDIC        string           `json:"company_dic,omitempty"`
	BankAccount       string           `json:"bank_account,omitempty"`
	DefaultDueDays    *int             `json:"default_due_days,omitempty"`
	DefaultTaxRate    *decimal.Decimal `json:"default_tax_rate,omitempty"`
}

// SettingsResponse nastavení v odpovědích.
type SettingsResponse struct {
	DefaultHourlyRate decimal.Decimal `json:"default_hourly_rate"`
	Currency          string          `json:"currency"`
	CompanyName       string          `json:"company_name,omitempty"`
	CompanyAddress    string          `json:"company_address,omitempty"`
	CompanyICO        string          `json:"company_ico,omitempty"`
	CompanyDIC        string          `json:"company_dic,omitempty"`
	BankAccount       string          `json:"bank_account,omitempty"`
	DefaultDueDays    int             `json:"default_due_days"`
	DefaultTaxRate    decimal.Decimal `json:"default_tax_rate"`
}
