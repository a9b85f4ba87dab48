package billing

import (
	"context"
	"time"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	domainbilling "github.com/mkadlec/fakturace-api/internal/domain/billing"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// validStatuses jsou stavy přijímané v requestu na změnu stavu.
var validStatuses = map[string]bool{
	entity.InvoiceStatusDraft:     true,
	entity.InvoiceStatusIssued:    true,
	entity.InvoiceStatusSent:      true,
	entity.InvoiceStatusPaid:      true,
	entity.InvoiceStatusCancelled: true,
	entity.InvoiceStatusOverdue:   true,
}

// UpdateStatus změní stav faktury podle přechodové tabulky. Přechod do paid
// nastaví paid_at a kaskádně označí navázané záznamy jako zaplacené —
// obojí v jedné transakci.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, userID, invoiceID, newStatus string) (*dto.InvoiceResponse, error) {
	if !validStatuses[newStatus] {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		entryRepo repository.EntryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		var err error
		inv, err = invoiceRepo.GetByID(userID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		if !domainbilling.CanTransition(inv.Status, newStatus) {
			return domain.ErrInvalidTransition
		}

		inv.Status = newStatus
		inv.UpdatedAt = now
		if newStatus == entity.InvoiceStatusPaid {
			inv.PaidAt = &now
		}
		if err := invoiceRepo.UpdateStatus(inv); err != nil {
			return err
		}
		if newStatus == entity.InvoiceStatusPaid {
			if err := entryRepo.MarkPaidByInvoice(inv.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("status", newStatus).
		Msg("změněn stav faktury")

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv, items, now), nil
}

// Delete smaže fakturu včetně položek. Navázané záznamy se NEJDŘÍV vrátí
// do stavu unbilled a odpojí — nikdy nesmí existovat okno, kdy záznam
// odkazuje na smazanou fakturu. Druhé smazání vrací ErrInvoiceNotFound.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, invoiceID string) error {
	err := uc.txRunner.RunBilling(ctx, func(
		entryRepo repository.EntryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		inv, err := invoiceRepo.GetByID(userID, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		if err := entryRepo.ReleaseByInvoice(inv.ID); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItemsByInvoiceID(inv.ID); err != nil {
			return err
		}
		return invoiceRepo.Delete(userID, inv.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("invoice_id", invoiceID).Msg("faktura smazána, záznamy uvolněny")
	return nil
}
