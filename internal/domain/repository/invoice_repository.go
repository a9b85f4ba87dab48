package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
)

// InvoiceFilters jsou volitelné filtry pro výpis faktur.
type InvoiceFilters struct {
	ClientID    string
	Status      string
	InvoiceType string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// InvoiceStats jsou počty a částky faktur podle stavu. Overdue se počítá
// ze splatnosti (issued/sent po termínu), ne z uloženého stavu.
type InvoiceStats struct {
	TotalCount   int
	DraftCount   int
	IssuedCount  int
	PaidCount    int
	OverdueCount int
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	UnpaidAmount decimal.Decimal
}

// InvoiceRepository definuje port persistence pro faktury a jejich položky.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(userID, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	List(userID string, f InvoiceFilters) ([]*entity.Invoice, error)
	// UpdateStatus zapíše status, paid_at a updated_at.
	UpdateStatus(inv *entity.Invoice) error
	Delete(userID, id string) error
	DeleteItemsByInvoiceID(invoiceID string) error

	// NextNumber vrací pořadí další faktury uživatele v daném roce.
	// Číslování je serializované (advisory lock) — volat jen v transakci,
	// která fakturu zároveň vkládá, jinak lock nic nechrání.
	NextNumber(userID string, year int) (int, error)

	// Stats agreguje počty a částky podle stavu k časovému okamžiku now.
	Stats(ctx context.Context, userID string, now time.Time) (*InvoiceStats, error)
}
