package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
)

// EntryUseCase spravuje pracovní záznamy. Fakturační stav záznamů nemění —
// to je výhradně věc koordinátora fakturace.
type EntryUseCase struct {
	entryRepo    repository.EntryRepository
	clientRepo   repository.ClientRepository
	phaseRepo    repository.PhaseRepository
	settingsRepo repository.SettingsRepository
}

// NewEntryUseCase sestaví use case.
func NewEntryUseCase(
	entryRepo repository.EntryRepository,
	clientRepo repository.ClientRepository,
	phaseRepo repository.PhaseRepository,
	settingsRepo repository.SettingsRepository,
) *EntryUseCase {
	return &EntryUseCase{
		entryRepo:    entryRepo,
		clientRepo:   clientRepo,
		phaseRepo:    phaseRepo,
		settingsRepo: settingsRepo,
	}
}

const timeLayout = "15:04"

// durationMinutes odvodí trvání v minutách ze začátku a konce ("HH:MM").
// Konec musí být po začátku, práce přes půlnoc se zadává dvěma záznamy.
func durationMinutes(start, end string) (int, error) {
	from, err := time.Parse(timeLayout, start)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	to, err := time.Parse(timeLayout, end)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	minutes := int(to.Sub(from).Minutes())
	if minutes <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return minutes, nil
}

// ResolveHourlyRate určí sazbu s prioritou záznam > fáze > klient > výchozí.
func ResolveHourlyRate(entryRate, phaseRate, clientRate *decimal.Decimal, defaultRate decimal.Decimal) decimal.Decimal {
	switch {
	case entryRate != nil:
		return *entryRate
	case phaseRate != nil:
		return *phaseRate
	case clientRate != nil:
		return *clientRate
	default:
		return defaultRate
	}
}

// resolveRate poskládá sazbu záznamu z requestu, fáze, klienta a nastavení.
func (uc *EntryUseCase) resolveRate(userID string, client *entity.Client, phaseID string, entryRate *decimal.Decimal) (decimal.Decimal, error) {
	var phaseRate *decimal.Decimal
	if phaseID != "" {
		phase, err := uc.phaseRepo.GetByID(userID, phaseID)
		if err != nil {
			return decimal.Zero, err
		}
		if phase == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		phaseRate = phase.HourlyRate
	}
	defaultRate := decimal.Zero
	settings, err := uc.settingsRepo.Get(userID)
	if err != nil {
		return decimal.Zero, err
	}
	if settings != nil {
		defaultRate = settings.DefaultHourlyRate
	}
	var clientRate *decimal.Decimal
	if client != nil {
		clientRate = client.HourlyRate
	}
	return ResolveHourlyRate(entryRate, phaseRate, clientRate, defaultRate), nil
}

// Create založí nový záznam ve stavu unbilled.
func (uc *EntryUseCase) Create(ctx context.Context, userID string, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if in.ClientID == "" || in.Date == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(userID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	minutes, err := durationMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	rate, err := uc.resolveRate(userID, client, in.PhaseID, in.HourlyRate)
	if err != nil {
		return nil, err
	}

	e := &entity.Entry{
		ID:              uuid.New().String(),
		UserID:          userID,
		ClientID:        in.ClientID,
		Date:            date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: minutes,
		Description:     in.Description,
		HourlyRate:      rate,
		BillingStatus:   entity.BillingUnbilled,
		CreatedAt:       time.Now(),
	}
	if in.PhaseID != "" {
		phaseID := in.PhaseID
		e.PhaseID = &phaseID
	}
	if in.ProjectID != "" {
		projectID := in.ProjectID
		e.ProjectID = &projectID
	}
	if err := uc.entryRepo.Create(e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// Update upraví záznam. Vyfakturované záznamy se upravovat nesmí — změna
// trvání nebo sazby by rozešla záznam s položkami existující faktury.
func (uc *EntryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	e, err := uc.entryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEntryNotFound
	}
	if e.BillingStatus != entity.BillingUnbilled {
		return nil, domain.ErrEntryAlreadyClaimed
	}

	date, err := time.Parse(dto.DateLayout, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	minutes, err := durationMinutes(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(userID, e.ClientID)
	if err != nil {
		return nil, err
	}
	rate, err := uc.resolveRate(userID, client, in.PhaseID, in.HourlyRate)
	if err != nil {
		return nil, err
	}

	e.Date = date
	e.StartTime = in.StartTime
	e.EndTime = in.EndTime
	e.DurationMinutes = minutes
	e.Description = in.Description
	e.HourlyRate = rate
	e.PhaseID = nil
	if in.PhaseID != "" {
		phaseID := in.PhaseID
		e.PhaseID = &phaseID
	}
	e.ProjectID = nil
	if in.ProjectID != "" {
		projectID := in.ProjectID
		e.ProjectID = &projectID
	}
	if err := uc.entryRepo.Update(e); err != nil {
		return nil, err
	}
	return toEntryResponse(e), nil
}

// Delete smaže záznam. Vyfakturované záznamy mazat nelze — nejdřív je nutné
// smazat fakturu, která je uvolní.
func (uc *EntryUseCase) Delete(ctx context.Context, userID, id string) error {
	e, err := uc.entryRepo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrEntryNotFound
	}
	if e.BillingStatus != entity.BillingUnbilled {
		return domain.ErrEntryAlreadyClaimed
	}
	return uc.entryRepo.Delete(userID, id)
}

// Get vrátí jeden záznam.
func (uc *EntryUseCase) Get(ctx context.Context, userID, id string) (*dto.EntryResponse, error) {
	e, err := uc.entryRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEntryNotFound
	}
	return toEntryResponse(e), nil
}

// List vrátí záznamy podle filtrů.
func (uc *EntryUseCase) List(ctx context.Context, userID string, f repository.EntryFilters) ([]*dto.EntryResponse, error) {
	entries, err := uc.entryRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out, nil
}

// Stats spočítá souhrn záznamů vyhovujících filtrům: celkové minuty,
// částku a počet.
func (uc *EntryUseCase) Stats(ctx context.Context, userID string, f repository.EntryFilters) (*dto.EntryStatsResponse, error) {
	entries, err := uc.entryRepo.List(userID, f)
	if err != nil {
		return nil, err
	}
	return CalculateStats(entries), nil
}

// CalculateStats sečte minuty a částky přes dané záznamy.
func CalculateStats(entries []*entity.Entry) *dto.EntryStatsResponse {
	totalMinutes := 0
	amount := decimal.Zero
	for _, e := range entries {
		totalMinutes += e.DurationMinutes
		amount = amount.Add(e.Amount())
	}
	return &dto.EntryStatsResponse{
		TotalMinutes: totalMinutes,
		Hours:        totalMinutes / 60,
		Minutes:      totalMinutes % 60,
		Amount:       amount,
		Count:        len(entries),
	}
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:              e.ID,
		ClientID:        e.ClientID,
		PhaseName:       e.PhaseName,
		Date:            e.Date.Format(dto.DateLayout),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		Description:     e.Description,
		HourlyRate:      e.HourlyRate,
		Amount:          e.Amount(),
		BillingStatus:   e.BillingStatus,
	}
	if e.PhaseID != nil {
		resp.PhaseID = *e.PhaseID
	}
	if e.ProjectID != nil {
		resp.ProjectID = *e.ProjectID
	}
	if e.InvoiceID != nil {
		resp.InvoiceID = *e.InvoiceID
	}
	return resp
}
