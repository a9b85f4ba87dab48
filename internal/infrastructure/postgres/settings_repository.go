package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementace SettingsRepository (použitelná s poolem i tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository sestaví adaptér. Předat pool nebo tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get vrátí nastavení uživatele nebo nil, pokud ještě neexistuje.
func (r *SettingsRepo) Get(userID string) (*entity.Settings, error) {
	query := `
		SELECT user_id, default_hourly_rate, currency,
		       COALESCE(company_name, ''), COALESCE(company_address, ''),
		       COALESCE(company_ico, ''), COALESCE(company_dic, ''),
		       COALESCE(bank_account, ''), default_due_days, default_tax_rate, updated_at
		FROM settings WHERE user_id = $1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&s.UserID, &s.DefaultHourlyRate, &s.Currency,
		&s.CompanyName, &s.CompanyAddress, &s.CompanyICO, &s.CompanyDIC,
		&s.BankAccount, &s.DefaultDueDays, &s.DefaultTaxRate, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Create uloží nastavení uživatele.
func (r *SettingsRepo) Create(s *entity.Settings) error {
	query := `
		INSERT INTO settings (user_id, default_hourly_rate, currency, company_name, company_address, company_ico, company_dic, bank_account, default_due_days, default_tax_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.UserID, s.DefaultHourlyRate, s.Currency,
		nullIfEmpty(s.CompanyName), nullIfEmpty(s.CompanyAddress),
		nullIfEmpty(s.CompanyICO), nullIfEmpty(s.CompanyDIC),
		nullIfEmpty(s.BankAccount), s.DefaultDueDays, s.DefaultTaxRate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settings: %w", err)
	}
	return nil
}

// Update přepíše nastavení uživatele.
func (r *SettingsRepo) Update(s *entity.Settings) error {
	query := `
		UPDATE settings
		SET default_hourly_rate = $2, currency = $3, company_name = $4,
		    company_address = $5, company_ico = $6, company_dic = $7,
		    bank_account = $8, default_due_days = $9, default_tax_rate = $10,
		    updated_at = $11
		WHERE user_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.UserID, s.DefaultHourlyRate, s.Currency,
		nullIfEmpty(s.CompanyName), nullIfEmpty(s.CompanyAddress),
		nullIfEmpty(s.CompanyICO), nullIfEmpty(s.CompanyDIC),
		nullIfEmpty(s.BankAccount), s.DefaultDueDays, s.DefaultTaxRate, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
