package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ repository.PhaseRepository = (*PhaseRepo)(nil)

// PhaseRepo implementace PhaseRepository (použitelná s poolem i tx).
type PhaseRepo struct {
	q Querier
}

// NewPhaseRepository sestaví adaptér. Předat pool nebo tx (Querier).
func NewPhaseRepository(q Querier) *PhaseRepo {
	return &PhaseRepo{q: q}
}

// Create uloží novou fázi.
func (r *PhaseRepo) Create(p *entity.Phase) error {
	query := `
		INSERT INTO phases (id, user_id, client_id, name, description, hourly_rate, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.ClientID, p.Name, nullIfEmpty(p.Description),
		p.HourlyRate, p.Status, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert phase: %w", err)
	}
	return nil
}

// Update přepíše údaje fáze.
func (r *PhaseRepo) Update(p *entity.Phase) error {
	query := `
		UPDATE phases
		SET name = $3, description = $4, hourly_rate = $5, status = $6
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		p.UserID, p.ID, p.Name, nullIfEmpty(p.Description), p.HourlyRate, p.Status,
	)
	if err != nil {
		return fmt.Errorf("update phase: %w", err)
	}
	return nil
}

// Delete smaže fázi uživatele.
func (r *PhaseRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM phases WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete phase: %w", err)
	}
	return nil
}

// GetByID vrátí fázi uživatele nebo nil.
func (r *PhaseRepo) GetByID(userID, id string) (*entity.Phase, error) {
	query := `
		SELECT id, user_id, client_id, name, COALESCE(description, ''), hourly_rate, status, created_at
		FROM phases WHERE user_id = $1 AND id = $2`
	var p entity.Phase
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.Description, &p.HourlyRate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get phase: %w", err)
	}
	return &p, nil
}

// ListByClient vrátí fáze klienta podle jména.
func (r *PhaseRepo) ListByClient(userID, clientID string) ([]*entity.Phase, error) {
	query := `
		SELECT id, user_id, client_id, name, COALESCE(description, ''), hourly_rate, status, created_at
		FROM phases WHERE user_id = $1 AND client_id = $2 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Phase
	for rows.Next() {
		var p entity.Phase
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.Description, &p.HourlyRate, &p.Status, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
