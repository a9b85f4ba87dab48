package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
)

// Strategie seskupení pracovních záznamů do položek faktury.
const (
	GroupByEntry = "entry" // každý záznam samostatná položka
	GroupByPhase = "phase" // součet minut po fázích
	GroupByDay   = "day"   // součet minut po dnech
)

// UnitHours je účetní jednotka položek vzniklých ze záznamů.
const UnitHours = "hod"

var minutesPerHour = decimal.NewFromInt(60)

// ItemDraft je podklad položky faktury před uložením. Pořadí v seznamu
// určuje sort_order.
type ItemDraft struct {
	EntryID     *string
	PhaseID     *string
	Description string
	Quantity    decimal.Decimal // hodiny (minuty/60, bez zaokrouhlení)
	Unit        string
	UnitPrice   decimal.Decimal
}

// GroupResult je výstup seskupení. MixedRates obsahuje popisy skupin,
// ve kterých se záznamy liší hodinovou sazbou — jednotkovou cenu tam
// určuje první záznam skupiny a volající to má zalogovat.
type GroupResult struct {
	Items      []ItemDraft
	MixedRates []string
}

// GroupEntries převede nevyfakturované záznamy jednoho klienta na položky
// faktury podle strategie. Vstup nesmí být prázdný (validuje volající).
// Skupiny phase/day drží pořadí prvního výskytu.
func GroupEntries(entries []*entity.Entry, groupBy string) (GroupResult, error) {
	switch groupBy {
	case GroupByEntry:
		return groupPerEntry(entries), nil
	case GroupByPhase:
		return groupByKey(entries, phaseKey), nil
	case GroupByDay:
		return groupByKey(entries, dayKey), nil
	default:
		return GroupResult{}, domain.ErrInvalidInput
	}
}

func groupPerEntry(entries []*entity.Entry) GroupResult {
	var res GroupResult
	for _, e := range entries {
		desc := e.Description
		if desc == "" {
			desc = "Práce " + e.Date.Format("2006-01-02")
		}
		entryID := e.ID
		res.Items = append(res.Items, ItemDraft{
			EntryID:     &entryID,
			PhaseID:     e.PhaseID,
			Description: desc,
			Quantity:    minutesToHours(e.DurationMinutes),
			Unit:        UnitHours,
			UnitPrice:   e.HourlyRate,
		})
	}
	return res
}

// keyFunc vrací klíč skupiny, popis položky a případnou fázi pro daný záznam.
type keyFunc func(e *entity.Entry) (key, description string, phaseID *string)

func phaseKey(e *entity.Entry) (string, string, *string) {
	if e.PhaseID == nil {
		return "no-phase", "Bez fáze", nil
	}
	name := e.PhaseName
	if name == "" {
		name = "Bez fáze"
	}
	return *e.PhaseID, name, e.PhaseID
}

func dayKey(e *entity.Entry) (string, string, *string) {
	day := e.Date.Format("2006-01-02")
	return day, "Práce dne " + day, nil
}

type bucket struct {
	phaseID      *string
	description  string
	totalMinutes int
	rate         decimal.Decimal // sazba prvního záznamu skupiny
	mixed        bool
}

func groupByKey(entries []*entity.Entry, key keyFunc) GroupResult {
	buckets := make(map[string]*bucket)
	var order []string

	for _, e := range entries {
		k, desc, phaseID := key(e)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{
				phaseID:     phaseID,
				description: desc,
				rate:        e.HourlyRate,
			}
			buckets[k] = b
			order = append(order, k)
		}
		b.totalMinutes += e.DurationMinutes
		if !e.HourlyRate.Equal(b.rate) {
			b.mixed = true
		}
	}

	var res GroupResult
	for _, k := range order {
		b := buckets[k]
		res.Items = append(res.Items, ItemDraft{
			PhaseID:     b.phaseID,
			Description: b.description,
			Quantity:    minutesToHours(b.totalMinutes),
			Unit:        UnitHours,
			UnitPrice:   b.rate,
		})
		if b.mixed {
			res.MixedRates = append(res.MixedRates, b.description)
		}
	}
	return res
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}
