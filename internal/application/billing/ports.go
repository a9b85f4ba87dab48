package billing

import (
	"context"

	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// BillingTxRunner spouští callback nad repozitáři v jedné databázové
// transakci. Vícekrokové zápisy koordinátora (faktura + položky + záznamy)
// musí proběhnout atomicky — při chybě se celá transakce odrolovává.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
