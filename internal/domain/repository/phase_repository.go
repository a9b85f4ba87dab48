package repository

import "github.com/mkadlec/fakturace-api/internal/domain/entity"

// PhaseRepository definuje port persistence pro fáze.
type PhaseRepository interface {
	Create(p *entity.Phase) error
	Update(p *entity.Phase) error
	Delete(userID, id string) error
	GetByID(userID, id string) (*entity.Phase, error)
	ListByClient(userID, clientID string) ([]*entity.Phase, error)
}
