package dto

import "github.com/shopspring/decimal"

// CreateLinkedInvoiceRequest body pro POST /api/invoices.
// Faktura vzniká z vybraných nevyfakturovaných záznamů jednoho klienta.
// DueDate, TaxRate a BankAccount jsou volitelné — doplní se z nastavení.
type CreateLinkedInvoiceRequest struct {
	ClientID       string           `json:"client_id"`
	EntryIDs       []string         `json:"entry_ids"`
	GroupBy        string           `json:"group_by"` // entry | phase | day
	IssueDate      string           `json:"issue_date"`
	DueDate        string           `json:"due_date,omitempty"`
	TaxRate        *decimal.Decimal `json:"tax_rate,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	VariableSymbol string           `json:"variable_symbol,omitempty"`
	BankAccount    string           `json:"bank_account,omitempty"`
}

// StandaloneItemRequest je volná položka standalone faktury.
type StandaloneItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"` // "hod", "ks"
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateStandaloneInvoiceRequest body pro POST /api/invoices/standalone.
// ClientID může chybět — pak se odběratel uvede textově (snapshot).
type CreateStandaloneInvoiceRequest struct {
	ClientID       string                  `json:"client_id,omitempty"`
	ClientName     string                  `json:"client_name,omitempty"`
	ClientAddress  string                  `json:"client_address,omitempty"`
	ClientICO      string                  `json:"client_ico,omitempty"`
	Items          []StandaloneItemRequest `json:"items"`
	IssueDate      string                  `json:"issue_date"`
	DueDate        string                  `json:"due_date,omitempty"`
	TaxRate        *decimal.Decimal        `json:"tax_rate,omitempty"`
	Notes          string                  `json:"notes,omitempty"`
	VariableSymbol string                  `json:"variable_symbol,omitempty"`
	BankAccount    string                  `json:"bank_account,omitempty"`
}

// UpdateInvoiceStatusRequest body pro PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceItemResponse položka faktury v odpovědích.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	EntryID     string          `json:"entry_id,omitempty"`
	PhaseID     string          `json:"phase_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	SortOrder   int             `json:"sort_order"`
}

// InvoiceResponse faktura v odpovědích. Status je uložený stav,
// DisplayStatus k němu přidává odvozené "overdue".
type InvoiceResponse struct {
	ID             string                `json:"id"`
	ClientID       string                `json:"client_id,omitempty"`
	ClientName     string                `json:"client_name,omitempty"`
	ClientAddress  string                `json:"client_address,omitempty"`
	ClientICO      string                `json:"client_ico,omitempty"`
	InvoiceNumber  string                `json:"invoice_number"`
	IssueDate      string                `json:"issue_date"`
	DueDate        string                `json:"due_date"`
	InvoiceType    string                `json:"invoice_type"`
	Status         string                `json:"status"`
	DisplayStatus  string                `json:"display_status"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxRate        decimal.Decimal       `json:"tax_rate"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	Currency       string                `json:"currency"`
	VariableSymbol string                `json:"variable_symbol,omitempty"`
	BankAccount    string                `json:"bank_account,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	PaidAt         string                `json:"paid_at,omitempty"`
	// QRPayment je SPAYD řetězec pro QR platbu; jen u faktur s účtem.
	QRPayment string                `json:"qr_payment,omitempty"`
	Items     []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceStatsResponse souhrn faktur podle stavu pro GET /api/invoices/stats.
type InvoiceStatsResponse struct {
	TotalCount   int             `json:"total_count"`
	DraftCount   int             `json:"draft_count"`
	IssuedCount  int             `json:"issued_count"`
	PaidCount    int             `json:"paid_count"`
	OverdueCount int             `json:"overdue_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
}
