package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementace EntryRepository (použitelná s poolem i tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository sestaví adaptér. Předat pool nebo tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `
	e.id, e.user_id, e.client_id, e.phase_id, e.project_id, e.date,
	e.start_time, e.end_time, e.duration_minutes, e.description,
	e.hourly_rate, e.billing_status, e.invoice_id, e.created_at,
	COALESCE(p.name, '')`

// Create uloží nový pracovní záznam.
func (r *EntryRepo) Create(e *entity.Entry) error {
	query := `
		INSERT INTO entries (id, user_id, client_id, phase_id, project_id, date, start_time, end_time, duration_minutes, description, hourly_rate, billing_status, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.UserID, e.ClientID, e.PhaseID, e.ProjectID, e.Date,
		e.StartTime, e.EndTime, e.DurationMinutes, e.Description,
		e.HourlyRate, e.BillingStatus, e.InvoiceID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update přepíše obsah záznamu. Fakturační pole (billing_status, invoice_id)
// se tady záměrně nemění — ta patří koordinátorovi.
func (r *EntryRepo) Update(e *entity.Entry) error {
	query := `
		UPDATE entries
		SET phase_id = $3, project_id = $4, date = $5, start_time = $6,
		    end_time = $7, duration_minutes = $8, description = $9, hourly_rate = $10
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		e.UserID, e.ID, e.PhaseID, e.ProjectID, e.Date,
		e.StartTime, e.EndTime, e.DurationMinutes, e.Description, e.HourlyRate,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete smaže záznam uživatele.
func (r *EntryRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM entries WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// GetByID vrátí záznam uživatele nebo nil.
func (r *EntryRepo) GetByID(userID, id string) (*entity.Entry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM entries e
		LEFT JOIN phases p ON p.id = e.phase_id
		WHERE e.user_id = $1 AND e.id = $2`
	row := r.q.QueryRow(context.Background(), query, userID, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// List vrátí záznamy uživatele podle filtrů, od nejnovějších.
func (r *EntryRepo) List(userID string, f repository.EntryFilters) ([]*entity.Entry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM entries e
		LEFT JOIN phases p ON p.id = e.phase_id
		WHERE e.user_id = $1`
	args := []any{userID}

	addFilter := func(condition string, value any) {
		args = append(args, value)
		query += " AND " + condition + "$" + strconv.Itoa(len(args))
	}
	if f.ClientID != "" {
		addFilter("e.client_id = ", f.ClientID)
	}
	if f.PhaseID != "" {
		addFilter("e.phase_id = ", f.PhaseID)
	}
	if f.ProjectID != "" {
		addFilter("e.project_id = ", f.ProjectID)
	}
	if f.BillingStatus != "" {
		addFilter("e.billing_status = ", f.BillingStatus)
	}
	if f.DateFrom != nil {
		addFilter("e.date >= ", *f.DateFrom)
	}
	if f.DateTo != nil {
		addFilter("e.date <= ", *f.DateTo)
	}
	if f.Year > 0 {
		addFilter("EXTRACT(YEAR FROM e.date) = ", f.Year)
	}
	query += " ORDER BY e.date DESC, e.start_time DESC"

	return r.queryEntries(query, args...)
}

// ListByIDs vrátí záznamy uživatele pro daná ID, v pořadí podle data.
func (r *EntryRepo) ListByIDs(userID string, ids []string) ([]*entity.Entry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM entries e
		LEFT JOIN phases p ON p.id = e.phase_id
		WHERE e.user_id = $1 AND e.id = ANY($2)
		ORDER BY e.date, e.start_time`
	return r.queryEntries(query, userID, ids)
}

// ListUnbilled vrátí nevyfakturované záznamy, volitelně jen pro klienta.
func (r *EntryRepo) ListUnbilled(userID, clientID string) ([]*entity.Entry, error) {
	query := `
		SELECT` + entryColumns + `
		FROM entries e
		LEFT JOIN phases p ON p.id = e.phase_id
		WHERE e.user_id = $1 AND e.billing_status = 'unbilled'`
	args := []any{userID}
	if clientID != "" {
		args = append(args, clientID)
		query += " AND e.client_id = $2"
	}
	query += " ORDER BY e.date DESC, e.start_time DESC"
	return r.queryEntries(query, args...)
}

// ClaimForInvoice podmíněně zabere záznamy pro fakturu. Počet změněných
// řádků hlídá volající — méně než požadováno znamená souběh.
func (r *EntryRepo) ClaimForInvoice(userID string, ids []string, invoiceID string) (int64, error) {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE entries
		SET billing_status = 'billed', invoice_id = $1
		WHERE user_id = $2 AND id = ANY($3) AND billing_status = 'unbilled'`,
		invoiceID, userID, ids,
	)
	if err != nil {
		return 0, fmt.Errorf("claim entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkPaidByInvoice označí všechny záznamy faktury jako zaplacené.
func (r *EntryRepo) MarkPaidByInvoice(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE entries SET billing_status = 'paid' WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("mark entries paid: %w", err)
	}
	return nil
}

// ReleaseByInvoice vrátí záznamy faktury do unbilled a odpojí je.
func (r *EntryRepo) ReleaseByInvoice(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE entries
		SET billing_status = 'unbilled', invoice_id = NULL
		WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("release entries: %w", err)
	}
	return nil
}

func (r *EntryRepo) queryEntries(query string, args ...any) ([]*entity.Entry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(
		&e.ID, &e.UserID, &e.ClientID, &e.PhaseID, &e.ProjectID, &e.Date,
		&e.StartTime, &e.EndTime, &e.DurationMinutes, &e.Description,
		&e.HourlyRate, &e.BillingStatus, &e.InvoiceID, &e.CreatedAt,
		&e.PhaseName,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
