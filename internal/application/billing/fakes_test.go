package billing_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory repozitáře pro testy koordinátora. Transakční runner před
// callbackem snapshotuje stav a při chybě ho vrací — stejné chování jako
// rollback v PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeEntryRepo struct {
	entries map[string]*entity.Entry
	// beforeClaim se zavolá těsně před ClaimForInvoice — simulace souběhu
	beforeClaim func()
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]*entity.Entry)}
}

func (r *fakeEntryRepo) add(e *entity.Entry) {
	cp := *e
	r.entries[e.ID] = &cp
}

func (r *fakeEntryRepo) Create(e *entity.Entry) error { r.add(e); return nil }

func (r *fakeEntryRepo) Update(e *entity.Entry) error { r.add(e); return nil }

func (r *fakeEntryRepo) Delete(userID, id string) error {
	delete(r.entries, id)
	return nil
}

func (r *fakeEntryRepo) GetByID(userID, id string) (*entity.Entry, error) {
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEntryRepo) List(userID string, f repository.EntryFilters) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) ListByIDs(userID string, ids []string) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) ListUnbilled(userID, clientID string) ([]*entity.Entry, error) {
	var out []*entity.Entry
	for _, e := range r.entries {
		if e.UserID != userID || e.BillingStatus != entity.BillingUnbilled {
			continue
		}
		if clientID != "" && e.ClientID != clientID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEntryRepo) ClaimForInvoice(userID string, ids []string, invoiceID string) (int64, error) {
	if r.beforeClaim != nil {
		r.beforeClaim()
		r.beforeClaim = nil
	}
	var claimed int64
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok || e.UserID != userID || e.BillingStatus != entity.BillingUnbilled {
			continue
		}
		e.BillingStatus = entity.BillingBilled
		inv := invoiceID
		e.InvoiceID = &inv
		claimed++
	}
	return claimed, nil
}

func (r *fakeEntryRepo) MarkPaidByInvoice(invoiceID string) error {
	for _, e := range r.entries {
		if e.InvoiceID != nil && *e.InvoiceID == invoiceID {
			e.BillingStatus = entity.BillingPaid
		}
	}
	return nil
}

func (r *fakeEntryRepo) ReleaseByInvoice(invoiceID string) error {
	for _, e := range r.entries {
		if e.InvoiceID != nil && *e.InvoiceID == invoiceID {
			e.BillingStatus = entity.BillingUnbilled
			e.InvoiceID = nil
		}
	}
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem // podle invoice_id
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	for _, other := range r.invoices {
		if other.UserID == inv.UserID && other.InvoiceNumber == inv.InvoiceNumber {
			return fmt.Errorf("duplicitní číslo faktury %s", inv.InvoiceNumber)
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(userID, id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.items[invoiceID] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) List(userID string, f repository.InvoiceFilters) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(inv *entity.Invoice) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return fmt.Errorf("faktura %s neexistuje", inv.ID)
	}
	stored.Status = inv.Status
	stored.PaidAt = inv.PaidAt
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) Delete(userID, id string) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) NextNumber(userID string, year int) (int, error) {
	prefix := fmt.Sprintf("%d-", year)
	count := 0
	for _, inv := range r.invoices {
		if inv.UserID == userID && strings.HasPrefix(inv.InvoiceNumber, prefix) {
			count++
		}
	}
	return count + 1, nil
}

func (r *fakeInvoiceRepo) Stats(ctx context.Context, userID string, now time.Time) (*repository.InvoiceStats, error) {
	stats := &repository.InvoiceStats{
		TotalAmount:  decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}
	for _, inv := range r.invoices {
		if inv.UserID != userID {
			continue
		}
		stats.TotalCount++
		stats.TotalAmount = stats.TotalAmount.Add(inv.TotalAmount)
		switch inv.Status {
		case entity.InvoiceStatusDraft:
			stats.DraftCount++
			stats.UnpaidAmount = stats.UnpaidAmount.Add(inv.TotalAmount)
		case entity.InvoiceStatusPaid:
			stats.PaidCount++
			stats.PaidAmount = stats.PaidAmount.Add(inv.TotalAmount)
		default:
			stats.IssuedCount++
			stats.UnpaidAmount = stats.UnpaidAmount.Add(inv.TotalAmount)
		}
	}
	return stats, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error { return r.Create(c) }

func (r *fakeClientRepo) Delete(userID, id string) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) GetByID(userID, id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(userID string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings map[string]*entity.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[string]*entity.Settings)}
}

func (r *fakeSettingsRepo) Get(userID string) (*entity.Settings, error) {
	s, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingsRepo) Create(s *entity.Settings) error {
	cp := *s
	r.settings[s.UserID] = &cp
	return nil
}

func (r *fakeSettingsRepo) Update(s *entity.Settings) error { return r.Create(s) }

// fakeTxRunner volá callback nad sdílenými fake repozitáři. Při chybě
// obnoví snapshot stavu pořízený před callbackem (ekvivalent rollbacku).
type fakeTxRunner struct {
	entryRepo   *fakeEntryRepo
	invoiceRepo *fakeInvoiceRepo
}

func (tx *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	entrySnap := snapshotEntries(tx.entryRepo.entries)
	invSnap, itemSnap := snapshotInvoices(tx.invoiceRepo)

	if err := fn(tx.entryRepo, tx.invoiceRepo); err != nil {
		tx.entryRepo.entries = entrySnap
		tx.invoiceRepo.invoices = invSnap
		tx.invoiceRepo.items = itemSnap
		return err
	}
	return nil
}

func snapshotEntries(src map[string]*entity.Entry) map[string]*entity.Entry {
	out := make(map[string]*entity.Entry, len(src))
	for k, v := range src {
		cp := *v
		if v.InvoiceID != nil {
			inv := *v.InvoiceID
			cp.InvoiceID = &inv
		}
		out[k] = &cp
	}
	return out
}

func snapshotInvoices(r *fakeInvoiceRepo) (map[string]*entity.Invoice, map[string][]*entity.InvoiceItem) {
	invs := make(map[string]*entity.Invoice, len(r.invoices))
	for k, v := range r.invoices {
		cp := *v
		invs[k] = &cp
	}
	items := make(map[string][]*entity.InvoiceItem, len(r.items))
	for k, list := range r.items {
		cpList := make([]*entity.InvoiceItem, 0, len(list))
		for _, it := range list {
			cp := *it
			cpList = append(cpList, &cp)
		}
		items[k] = cpList
	}
	return invs, items
}
