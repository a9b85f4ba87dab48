package repository

import "github.com/mkadlec/fakturace-api/internal/domain/entity"

// ClientRepository definuje port persistence pro klienty.
type ClientRepository interface {
	Create(c *entity.Client) error
	Update(c *entity.Client) error
	Delete(userID, id string) error
	GetByID(userID, id string) (*entity.Client, error)
	List(userID string) ([]*entity.Client, error)
}
