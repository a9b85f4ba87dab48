package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkadlec/fakturace-api/internal/application/billing"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner spouští callbacky koordinátora fakturace v jedné transakci
// PostgreSQL — commit jen pokud callback nevrátí chybu.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner sestaví runner nad poolem.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling otevře transakci, předá callbacku repozitáře navázané na tx
// a provede Commit nebo Rollback.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entryRepo := NewEntryRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(entryRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
