package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// ClientUseCase spravuje klienty a jejich fáze.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
	phaseRepo  repository.PhaseRepository
}

// NewClientUseCase sestaví use case.
func NewClientUseCase(clientRepo repository.ClientRepository, phaseRepo repository.PhaseRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, phaseRepo: phaseRepo}
}

// Create založí klienta.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Client{
		ID:         uuid.New().String(),
		UserID:     userID,
		Name:       in.Name,
		Address:    in.Address,
		ICO:        in.ICO,
		HourlyRate: in.HourlyRate,
		Note:       in.Note,
		CreatedAt:  time.Now(),
	}
	if err := uc.clientRepo.Create(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update upraví klienta.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c.Name = in.Name
	c.Address = in.Address
	c.ICO = in.ICO
	c.HourlyRate = in.HourlyRate
	c.Note = in.Note
	if err := uc.clientRepo.Update(c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Get vrátí klienta podle ID.
func (uc *ClientUseCase) Get(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List vrátí všechny klienty uživatele.
func (uc *ClientUseCase) List(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	clients, err := uc.clientRepo.List(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// CreatePhase založí fázi pro klienta.
func (uc *ClientUseCase) CreatePhase(ctx context.Context, userID, clientID string, in dto.CreatePhaseRequest) (*dto.PhaseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(userID, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	status := in.Status
	if status == "" {
		status = entity.PhaseStatusActive
	}
	p := &entity.Phase{
		ID:          uuid.New().String(),
		UserID:      userID,
		ClientID:    clientID,
		Name:        in.Name,
		Description: in.Description,
		HourlyRate:  in.HourlyRate,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if err := uc.phaseRepo.Create(p); err != nil {
		return nil, err
	}
	return toPhaseResponse(p), nil
}

// ListPhases vrátí fáze klienta.
func (uc *ClientUseCase) ListPhases(ctx context.Context, userID, clientID string) ([]*dto.PhaseResponse, error) {
	phases, err := uc.phaseRepo.ListByClient(userID, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PhaseResponse, 0, len(phases))
	for _, p := range phases {
		out = append(out, toPhaseResponse(p))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		Address:    c.Address,
		ICO:        c.ICO,
		HourlyRate: c.HourlyRate,
		Note:       c.Note,
	}
}

func toPhaseResponse(p *entity.Phase) *dto.PhaseResponse {
	return &dto.PhaseResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		HourlyRate:  p.HourlyRate,
		Status:      p.Status,
	}
}
