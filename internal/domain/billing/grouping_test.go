package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/billing"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pomocné konstruktory
// ──────────────────────────────────────────────────────────────────────────────

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type entrySpec struct {
	id        string
	day       string
	minutes   int
	desc      string
	rate      int64
	phaseID   string
	phaseName string
}

func makeEntry(s entrySpec) *entity.Entry {
	e := &entity.Entry{
		ID:              s.id,
		Date:            date(s.day),
		DurationMinutes: s.minutes,
		Description:     s.desc,
		HourlyRate:      decimal.NewFromInt(s.rate),
		PhaseName:       s.phaseName,
	}
	if s.phaseID != "" {
		pid := s.phaseID
		e.PhaseID = &pid
	}
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Seskupení po záznamech
// ──────────────────────────────────────────────────────────────────────────────

// Tři záznamy 60/90/30 minut při sazbě 1000 dají tři položky
// s množstvím 1, 1.5 a 0.5 hodiny v pořadí vstupu.
func TestGroupEntries_PoZaznamech(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, desc: "Návrh API", rate: 1000}),
		makeEntry(entrySpec{id: "e2", day: "2025-03-11", minutes: 90, desc: "Implementace", rate: 1000}),
		makeEntry(entrySpec{id: "e3", day: "2025-03-12", minutes: 30, desc: "Code review", rate: 1000}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByEntry)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Empty(t, res.MixedRates)

	assert.Equal(t, "Návrh API", res.Items[0].Description)
	assert.True(t, res.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, res.Items[1].Quantity.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, res.Items[2].Quantity.Equal(decimal.RequireFromString("0.5")))

	for i, it := range res.Items {
		assert.Equal(t, "hod", it.Unit)
		assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(1000)))
		require.NotNil(t, it.EntryID)
		assert.Equal(t, entries[i].ID, *it.EntryID)
	}
}

// Záznam bez popisu dostane náhradní popis "Práce <datum>".
func TestGroupEntries_PrazdnyPopis(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, rate: 800}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByEntry)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Práce 2025-03-10", res.Items[0].Description)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seskupení po fázích
// ──────────────────────────────────────────────────────────────────────────────

// Záznamy stejné fáze se sečtou do jedné položky; záznamy bez fáze
// skončí v položce "Bez fáze". Pořadí položek sleduje první výskyt.
func TestGroupEntries_PoFazich(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, rate: 1000, phaseID: "p1", phaseName: "Analýza"}),
		makeEntry(entrySpec{id: "e2", day: "2025-03-11", minutes: 30, rate: 900}),
		makeEntry(entrySpec{id: "e3", day: "2025-03-12", minutes: 60, rate: 1000, phaseID: "p1", phaseName: "Analýza"}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByPhase)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Empty(t, res.MixedRates)

	assert.Equal(t, "Analýza", res.Items[0].Description)
	assert.True(t, res.Items[0].Quantity.Equal(decimal.NewFromInt(2)), "120 minut = 2 hodiny")
	require.NotNil(t, res.Items[0].PhaseID)
	assert.Equal(t, "p1", *res.Items[0].PhaseID)

	assert.Equal(t, "Bez fáze", res.Items[1].Description)
	assert.True(t, res.Items[1].Quantity.Equal(decimal.RequireFromString("0.5")))
	assert.Nil(t, res.Items[1].PhaseID)
}

// Při různých sazbách ve skupině platí sazba prvního záznamu
// a skupina se objeví v MixedRates.
func TestGroupEntries_RuzneSazbyVeSkupine(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, rate: 1000, phaseID: "p1", phaseName: "Vývoj"}),
		makeEntry(entrySpec{id: "e2", day: "2025-03-11", minutes: 60, rate: 1200, phaseID: "p1", phaseName: "Vývoj"}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByPhase)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	assert.True(t, res.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)), "platí sazba prvního záznamu")
	assert.Equal(t, []string{"Vývoj"}, res.MixedRates)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seskupení po dnech
// ──────────────────────────────────────────────────────────────────────────────

// Záznamy jednoho dne se sečtou do položky "Práce dne <datum>" bez fáze,
// i kdyby záznamy fázi měly.
func TestGroupEntries_PoDnech(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, rate: 1000, phaseID: "p1", phaseName: "Analýza"}),
		makeEntry(entrySpec{id: "e2", day: "2025-03-10", minutes: 90, rate: 1000, phaseID: "p2", phaseName: "Vývoj"}),
		makeEntry(entrySpec{id: "e3", day: "2025-03-11", minutes: 30, rate: 1000}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByDay)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "Práce dne 2025-03-10", res.Items[0].Description)
	assert.True(t, res.Items[0].Quantity.Equal(decimal.RequireFromString("2.5")))
	assert.Nil(t, res.Items[0].PhaseID, "denní položka nenese fázi")

	assert.Equal(t, "Práce dne 2025-03-11", res.Items[1].Description)
	assert.True(t, res.Items[1].Quantity.Equal(decimal.RequireFromString("0.5")))
}

// Neznámá strategie je chyba validace.
func TestGroupEntries_NeznamaStrategie(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 60, rate: 1000}),
	}

	_, err := billing.GroupEntries(entries, "week")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Minuty nedělitelné šedesáti se převádějí bez zaokrouhlení (20 min = 1/3 h);
// částka položky pak odpovídá minutové sazbě.
func TestGroupEntries_NeceleHodiny(t *testing.T) {
	entries := []*entity.Entry{
		makeEntry(entrySpec{id: "e1", day: "2025-03-10", minutes: 20, desc: "Standup", rate: 900}),
	}

	res, err := billing.GroupEntries(entries, billing.GroupByEntry)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	amount := res.Items[0].Quantity.Mul(res.Items[0].UnitPrice)
	assert.True(t, amount.Equal(decimal.NewFromInt(300)), "20 minut při 900/h je 300")
}
