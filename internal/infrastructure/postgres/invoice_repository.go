package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementace InvoiceRepository (použitelná s poolem i tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository sestaví adaptér. Předat pool nebo tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create uloží hlavičku faktury.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, user_id, client_id, client_name, client_address, client_ico, invoice_number, issue_date, due_date, invoice_type, status, subtotal, tax_rate, tax_amount, total_amount, currency, variable_symbol, bank_account, notes, created_at, updated_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.UserID, inv.ClientID,
		nullIfEmpty(inv.ClientName), nullIfEmpty(inv.ClientAddress), nullIfEmpty(inv.ClientICO),
		inv.InvoiceNumber, inv.IssueDate, inv.DueDate, inv.InvoiceType, inv.Status,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.TotalAmount, inv.Currency,
		nullIfEmpty(inv.VariableSymbol), nullIfEmpty(inv.BankAccount), nullIfEmpty(inv.Notes),
		inv.CreatedAt, inv.UpdatedAt, inv.PaidAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("duplicitní číslo faktury %s: %w", inv.InvoiceNumber, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem uloží položku faktury.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, entry_id, phase_id, description, quantity, unit, unit_price, total_price, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, item.EntryID, item.PhaseID, item.Description,
		item.Quantity, item.Unit, item.UnitPrice, item.TotalPrice, item.SortOrder, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

const invoiceColumns = `
	id, user_id, client_id, client_name, client_address, client_ico,
	invoice_number, issue_date, due_date, invoice_type, status,
	subtotal, tax_rate, tax_amount, total_amount, currency,
	variable_symbol, bank_account, notes, created_at, updated_at, paid_at`

// GetByID vrátí fakturu uživatele nebo nil.
func (r *InvoiceRepo) GetByID(userID, id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE user_id = $1 AND id = $2`
	row := r.q.QueryRow(context.Background(), query, userID, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID vrátí položky faktury seřazené podle sort_order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, entry_id, phase_id, description, quantity, unit, unit_price, total_price, sort_order, created_at
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.EntryID, &it.PhaseID, &it.Description,
			&it.Quantity, &it.Unit, &it.UnitPrice, &it.TotalPrice, &it.SortOrder, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List vrátí faktury uživatele podle filtrů, od nejnovějších.
func (r *InvoiceRepo) List(userID string, f repository.InvoiceFilters) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE user_id = $1`
	args := []any{userID}

	addFilter := func(condition string, value any) {
		args = append(args, value)
		query += " AND " + condition + "$" + strconv.Itoa(len(args))
	}
	if f.ClientID != "" {
		addFilter("client_id = ", f.ClientID)
	}
	if f.Status != "" {
		addFilter("status = ", f.Status)
	}
	if f.InvoiceType != "" {
		addFilter("invoice_type = ", f.InvoiceType)
	}
	if f.DateFrom != nil {
		addFilter("issue_date >= ", *f.DateFrom)
	}
	if f.DateTo != nil {
		addFilter("issue_date <= ", *f.DateTo)
	}
	query += " ORDER BY issue_date DESC, created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateStatus zapíše status, paid_at a updated_at.
func (r *InvoiceRepo) UpdateStatus(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $3, paid_at = $4, updated_at = $5
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		inv.UserID, inv.ID, inv.Status, inv.PaidAt, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// Delete smaže hlavičku faktury. Položky maže DeleteItemsByInvoiceID
// (a jistí je ON DELETE CASCADE ve schématu).
func (r *InvoiceRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoices WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// DeleteItemsByInvoiceID smaže položky faktury.
func (r *InvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// NextNumber vrací pořadí další faktury uživatele v daném roce.
// Advisory lock serializuje číslování v rámci (uživatel, rok) — count-then-
// increment by jinak pod souběhem vydal duplicitní číslo. Lock je xact-level,
// drží se do konce transakce, proto se NextNumber smí volat jen uvnitř
// transakce, která fakturu zároveň vkládá.
func (r *InvoiceRepo) NextNumber(userID string, year int) (int, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		fmt.Sprintf("invoice_number:%s:%d", userID, year),
	)
	if err != nil {
		return 0, fmt.Errorf("lock invoice numbering: %w", err)
	}
	var count int
	err = r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE user_id = $1 AND invoice_number LIKE $2`,
		userID, fmt.Sprintf("%d-%%", year),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices for numbering: %w", err)
	}
	return count + 1, nil
}

// Stats agreguje počty a částky faktur podle stavu. Overdue se počítá ze
// splatnosti (issued/sent po termínu), uložený stav "overdue" se nepoužívá.
func (r *InvoiceRepo) Stats(ctx context.Context, userID string, now time.Time) (*repository.InvoiceStats, error) {
	const query = `
		SELECT
		    COUNT(*)                                                                          AS total_count,
		    COUNT(*) FILTER (WHERE status = 'draft')                                          AS draft_count,
		    COUNT(*) FILTER (WHERE status IN ('issued', 'sent') AND due_date >= $2::date)     AS issued_count,
		    COUNT(*) FILTER (WHERE status = 'paid')                                           AS paid_count,
		    COUNT(*) FILTER (WHERE status IN ('issued', 'sent') AND due_date <  $2::date)     AS overdue_count,
		    COALESCE(SUM(total_amount), 0)                                                    AS total_amount,
		    COALESCE(SUM(total_amount) FILTER (WHERE status = 'paid'), 0)                     AS paid_amount,
		    COALESCE(SUM(total_amount) FILTER (WHERE status IN ('issued', 'sent')), 0)        AS unpaid_amount
		FROM invoices
		WHERE user_id = $1`
	var stats repository.InvoiceStats
	err := r.q.QueryRow(ctx, query, userID, now).Scan(
		&stats.TotalCount, &stats.DraftCount, &stats.IssuedCount,
		&stats.PaidCount, &stats.OverdueCount,
		&stats.TotalAmount, &stats.PaidAmount, &stats.UnpaidAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("invoice stats: %w", err)
	}
	return &stats, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var clientName, clientAddress, clientICO, variableSymbol, bankAccount, notes *string
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ClientID, &clientName, &clientAddress, &clientICO,
		&inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.InvoiceType, &inv.Status,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.TotalAmount, &inv.Currency,
		&variableSymbol, &bankAccount, &notes, &inv.CreatedAt, &inv.UpdatedAt, &inv.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ClientName = derefStr(clientName)
	inv.ClientAddress = derefStr(clientAddress)
	inv.ClientICO = derefStr(clientICO)
	inv.VariableSymbol = derefStr(variableSymbol)
	inv.BankAccount = derefStr(bankAccount)
	inv.Notes = derefStr(notes)
	return &inv, nil
}
