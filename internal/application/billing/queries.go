package billing

import (
	"context"
	"time"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// GetInvoice vrátí fakturu s položkami.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv, items, time.Now()), nil
}

// ListInvoices vrátí faktury podle filtrů, bez položek.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, userID string, f repository.InvoiceFilters) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, uc.toResponse(inv, nil, now))
	}
	return out, nil
}

// GetUnbilledEntries vrátí nevyfakturované záznamy, volitelně pro klienta.
// Z nich si UI skládá výběr pro linked fakturu.
func (uc *InvoiceUseCase) GetUnbilledEntries(ctx context.Context, userID, clientID string) ([]*dto.EntryResponse, error) {
	entries, err := uc.entryRepo.ListUnbilled(userID, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToResponse(e))
	}
	return out, nil
}

// GetStats vrátí počty a částky faktur podle stavu.
func (uc *InvoiceUseCase) GetStats(ctx context.Context, userID string) (*dto.InvoiceStatsResponse, error) {
	stats, err := uc.invoiceRepo.Stats(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceStatsResponse{
		TotalCount:   stats.TotalCount,
		DraftCount:   stats.DraftCount,
		IssuedCount:  stats.IssuedCount,
		PaidCount:    stats.PaidCount,
		OverdueCount: stats.OverdueCount,
		TotalAmount:  stats.TotalAmount,
		PaidAmount:   stats.PaidAmount,
		UnpaidAmount: stats.UnpaidAmount,
	}, nil
}

func entryToResponse(e *entity.Entry) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:              e.ID,
		ClientID:        e.ClientID,
		PhaseName:       e.PhaseName,
		Date:            e.Date.Format(dto.DateLayout),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		Description:     e.Description,
		HourlyRate:      e.HourlyRate,
		Amount:          e.Amount(),
		BillingStatus:   e.BillingStatus,
	}
	if e.PhaseID != nil {
		resp.PhaseID = *e.PhaseID
	}
	if e.ProjectID != nil {
		resp.ProjectID = *e.ProjectID
	}
	if e.InvoiceID != nil {
		resp.InvoiceID = *e.InvoiceID
	}
	return resp
}
