package repository

import "github.com/mkadlec/fakturace-api/internal/domain/entity"

// SettingsRepository definuje port persistence pro uživatelská nastavení.
// Get vrací nil bez chyby, pokud nastavení neexistuje — výchozí hodnoty
// zakládá use case.
type SettingsRepository interface {
	Get(userID string) (*entity.Settings, error)
	Create(s *entity.Settings) error
	Update(s *entity.Settings) error
}
