package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementace ClientRepository (použitelná s poolem i tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository sestaví adaptér. Předat pool nebo tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create uloží nového klienta.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, name, address, ico, hourly_rate, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.UserID, c.Name, nullIfEmpty(c.Address), nullIfEmpty(c.ICO),
		c.HourlyRate, nullIfEmpty(c.Note), c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// Update přepíše údaje klienta.
func (r *ClientRepo) Update(c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $3, address = $4, ico = $5, hourly_rate = $6, note = $7
		WHERE user_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		c.UserID, c.ID, c.Name, nullIfEmpty(c.Address), nullIfEmpty(c.ICO),
		c.HourlyRate, nullIfEmpty(c.Note),
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete smaže klienta uživatele.
func (r *ClientRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// GetByID vrátí klienta uživatele nebo nil.
func (r *ClientRepo) GetByID(userID, id string) (*entity.Client, error) {
	query := `
		SELECT id, user_id, name, COALESCE(address, ''), COALESCE(ico, ''), hourly_rate, COALESCE(note, ''), created_at
		FROM clients WHERE user_id = $1 AND id = $2`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Address, &c.ICO, &c.HourlyRate, &c.Note, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List vrátí klienty uživatele podle jména.
func (r *ClientRepo) List(userID string) ([]*entity.Client, error) {
	query := `
		SELECT id, user_id, name, COALESCE(address, ''), COALESCE(ico, ''), hourly_rate, COALESCE(note, ''), created_at
		FROM clients WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Address, &c.ICO, &c.HourlyRate, &c.Note, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
