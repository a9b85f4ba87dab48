package timesheet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// SettingsDefaults jsou hodnoty pro nového uživatele, typicky
// z konfigurace aplikace.
type SettingsDefaults struct {
	HourlyRate decimal.Decimal
	Currency   string
	DueDays    int
	TaxRate    decimal.Decimal
}

// FallbackDefaults vrací pevné výchozí hodnoty pro případ, kdy konfigurace
// žádné nenese.
func FallbackDefaults() SettingsDefaults {
	return SettingsDefaults{
		HourlyRate: decimal.NewFromInt(850),
		Currency:   "Kč",
		DueDays:    14,
		TaxRate:    decimal.Zero,
	}
}

// SettingsUseCase spravuje uživatelská nastavení. Pokud neexistují,
// Get je založí s výchozími hodnotami.
type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
	defaults     SettingsDefaults
}

// NewSettingsUseCase sestaví use case.
func NewSettingsUseCase(settingsRepo repository.SettingsRepository, defaults SettingsDefaults) *SettingsUseCase {
	if defaults.Currency == "" {
		defaults = FallbackDefaults()
	}
	return &SettingsUseCase{settingsRepo: settingsRepo, defaults: defaults}
}

func (uc *SettingsUseCase) defaultSettings(userID string) *entity.Settings {
	return &entity.Settings{
		UserID:            userID,
		DefaultHourlyRate: uc.defaults.HourlyRate,
		Currency:          uc.defaults.Currency,
		DefaultDueDays:    uc.defaults.DueDays,
		DefaultTaxRate:    uc.defaults.TaxRate,
		UpdatedAt:         time.Now(),
	}
}

// Get vrátí nastavení uživatele; při prvním přístupu je založí.
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	s, err := uc.settingsRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = uc.defaultSettings(userID)
		if err := uc.settingsRepo.Create(s); err != nil {
			return nil, err
		}
	}
	return toSettingsResponse(s), nil
}

// Update upraví nastavení; nil/prázdná pole requestu se nemění.
func (uc *SettingsUseCase) Update(ctx context.Context, userID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.settingsRepo.Get(userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = uc.defaultSettings(userID)
		if err := uc.settingsRepo.Create(s); err != nil {
			return nil, err
		}
	}

	if in.DefaultHourlyRate != nil {
		s.DefaultHourlyRate = *in.DefaultHourlyRate
	}
	if in.Currency != "" {
		s.Currency = in.Currency
	}
	if in.CompanyName != "" {
		s.CompanyName = in.CompanyName
	}
	if in.CompanyAddress != "" {
		s.CompanyAddress = in.CompanyAddress
	}
	if in.CompanyICO != "" {
		s.CompanyICO = in.CompanyICO
	}
	if in.CompanyDIC != "" {
		s.CompanyDIC = in.CompanyDIC
	}
	if in.BankAccount != "" {
		s.BankAccount = in.BankAccount
	}
	if in.DefaultDueDays != nil {
		s.DefaultDueDays = *in.DefaultDueDays
	}
	if in.DefaultTaxRate != nil {
		s.DefaultTaxRate = *in.DefaultTaxRate
	}
	s.UpdatedAt = time.Now()

	if err := uc.settingsRepo.Update(s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		DefaultHourlyRate: s.DefaultHourlyRate,
		Currency:          s.Currency,
		CompanyName:       s.CompanyName,
		CompanyAddress:    s.CompanyAddress,
		CompanyICO:        s.CompanyICO,
		CompanyDIC:        s.CompanyDIC,
		BankAccount:       s.BankAccount,
		DefaultDueDays:    s.DefaultDueDays,
		DefaultTaxRate:    s.DefaultTaxRate,
	}
}
