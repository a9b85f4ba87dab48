package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/fakturace-api/internal/application/billing"
	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/pkg/logger"
)

const (
	testUserID   = "00000000-0000-0000-0000-000000000001"
	testClientID = "00000000-0000-0000-0000-000000000010"
)

// fixture drží use case a fake repozitáře pro přímé asserty na stavu.
type fixture struct {
	uc       *billing.InvoiceUseCase
	entries  *fakeEntryRepo
	invoices *fakeInvoiceRepo
	clients  *fakeClientRepo
	settings *fakeSettingsRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		entries:  newFakeEntryRepo(),
		invoices: newFakeInvoiceRepo(),
		clients:  newFakeClientRepo(),
		settings: newFakeSettingsRepo(),
	}
	f.clients.Create(&entity.Client{
		ID:      testClientID,
		UserID:  testUserID,
		Name:    "Acme a.s.",
		Address: "Dlouhá 1, Praha",
		ICO:     "12345678",
	})
	f.settings.Create(&entity.Settings{
		UserID:         testUserID,
		Currency:       "Kč",
		BankAccount:    "123456789/0100",
		DefaultDueDays: 14,
		DefaultTaxRate: decimal.NewFromInt(21),
	})

	tx := &fakeTxRunner{entryRepo: f.entries, invoiceRepo: f.invoices}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	f.uc = billing.NewInvoiceUseCase(tx, f.entries, f.invoices, f.clients, f.settings, log)
	return f
}

// seedEntries založí nevyfakturované záznamy klienta s danými minutami.
func (f *fixture) seedEntries(minutes ...int) []string {
	ids := make([]string, 0, len(minutes))
	for i, m := range minutes {
		id := fmt.Sprintf("entry-%d", i+1)
		f.entries.add(&entity.Entry{
			ID:              id,
			UserID:          testUserID,
			ClientID:        testClientID,
			Date:            time.Date(2025, 3, 10+i, 0, 0, 0, 0, time.UTC),
			StartTime:       "09:00",
			EndTime:         "17:00",
			DurationMinutes: m,
			Description:     fmt.Sprintf("Práce %d", i+1),
			HourlyRate:      decimal.NewFromInt(1000),
			BillingStatus:   entity.BillingUnbilled,
		})
		ids = append(ids, id)
	}
	return ids
}

// ──────────────────────────────────────────────────────────────────────────────
// Vystavení faktury ze záznamů
// ──────────────────────────────────────────────────────────────────────────────

// Šťastná cesta: tři záznamy 60/90/30 minut při 1000/h dají fakturu
// s mezisoučtem 3000, DPH 630 a celkem 3630; záznamy skončí jako billed
// s odkazem na fakturu.
func TestCreateLinkedInvoice_VystaviAOznaciZaznamy(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60, 90, 30)

	resp, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID:  testClientID,
		EntryIDs:  ids,
		GroupBy:   "entry",
		IssueDate: "2025-03-15",
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("%d-0001", year), resp.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.Equal(t, entity.InvoiceTypeLinked, resp.InvoiceType)
	assert.Equal(t, "Acme a.s.", resp.ClientName)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(3000)), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromInt(630)), "tax: %s", resp.TaxAmount)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(3630)), "total: %s", resp.TotalAmount)
	assert.Equal(t, "Kč", resp.Currency)
	// variabilní symbol = číslo faktury bez pomlčky
	assert.Equal(t, fmt.Sprintf("%d0001", year), resp.VariableSymbol)
	// splatnost = vystavení + výchozích 14 dnů
	assert.Equal(t, "2025-03-15", resp.IssueDate)
	assert.Equal(t, "2025-03-29", resp.DueDate)
	// účet z nastavení dává SPAYD pro QR platbu
	assert.Contains(t, resp.QRPayment, "SPD*1.0*ACC:CZ")
	assert.Contains(t, resp.QRPayment, "AM:3630.00")

	require.Len(t, resp.Items, 3)
	for i, it := range resp.Items {
		assert.Equal(t, i, it.SortOrder)
		assert.Equal(t, "hod", it.Unit)
	}

	for _, id := range ids {
		e, _ := f.entries.GetByID(testUserID, id)
		require.NotNil(t, e)
		assert.Equal(t, entity.BillingBilled, e.BillingStatus)
		require.NotNil(t, e.InvoiceID)
		assert.Equal(t, resp.ID, *e.InvoiceID)
	}
}

// Číselná řada pokračuje v rámci roku: druhá faktura dostane -0002.
func TestCreateLinkedInvoice_PokracujeCiselnaRada(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60, 60)

	first, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, EntryIDs: ids[:1], GroupBy: "entry", IssueDate: "2025-03-15",
	})
	require.NoError(t, err)
	second, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, EntryIDs: ids[1:], GroupBy: "entry", IssueDate: "2025-03-16",
	})
	require.NoError(t, err)

	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("%d-0001", year), first.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("%d-0002", year), second.InvoiceNumber)
}

// Prázdný výběr a chybějící klient jsou chyby validace.
func TestCreateLinkedInvoice_Validace(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prázdné entry_ids")

	_, err = f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		EntryIDs: []string{"e1"}, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "prázdný client_id")

	_, err = f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: "neexistuje", EntryIDs: []string{"e1"}, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "neznámý klient")
}

// Už vyfakturovaný záznam ve výběru: celá operace selže a nic se neuloží.
func TestCreateLinkedInvoice_VyfakturovanyZaznam(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60, 90)

	inv := "jina-faktura"
	f.entries.entries[ids[1]].BillingStatus = entity.BillingBilled
	f.entries.entries[ids[1]].InvoiceID = &inv

	_, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, EntryIDs: ids, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrNoBillableEntries)
	assert.Empty(t, f.invoices.invoices, "rollback nesmí nechat fakturu")

	e, _ := f.entries.GetByID(testUserID, ids[0])
	assert.Equal(t, entity.BillingUnbilled, e.BillingStatus, "první záznam zůstal nevyfakturovaný")
}

// Souběh: jiná faktura zabere záznam mezi ověřením a podmíněným UPDATE.
// Počet změněných řádků nesedí, transakce se odrolovává.
func TestCreateLinkedInvoice_SoubehPriZabirani(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60, 90)

	f.entries.beforeClaim = func() {
		inv := "soubezna-faktura"
		f.entries.entries[ids[1]].BillingStatus = entity.BillingBilled
		f.entries.entries[ids[1]].InvoiceID = &inv
	}

	_, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, EntryIDs: ids, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrEntryAlreadyClaimed)
	assert.Empty(t, f.invoices.invoices, "rollback nesmí nechat fakturu")

	// první záznam si po rollbacku drží unbilled, zabraný záznam zůstal cizí faktuře
	e, _ := f.entries.GetByID(testUserID, ids[0])
	assert.Equal(t, entity.BillingUnbilled, e.BillingStatus)
}

// Záznam jiného klienta ve výběru je chyba validace.
func TestCreateLinkedInvoice_ZaznamJinehoKlienta(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60)
	f.entries.entries[ids[0]].ClientID = "jiny-klient"

	_, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID: testClientID, EntryIDs: ids, GroupBy: "entry", IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Explicitní sazba DPH a splatnost v requestu přebijí nastavení.
func TestCreateLinkedInvoice_PrepsaneVychoziHodnoty(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60)

	zero := decimal.Zero
	resp, err := f.uc.CreateLinkedInvoice(context.Background(), testUserID, dto.CreateLinkedInvoiceRequest{
		ClientID:       testClientID,
		EntryIDs:       ids,
		GroupBy:        "entry",
		IssueDate:      "2025-03-15",
		DueDate:        "2025-04-30",
		TaxRate:        &zero,
		VariableSymbol: "999001",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-04-30", resp.DueDate)
	assert.True(t, resp.TaxAmount.IsZero())
	assert.True(t, resp.TotalAmount.Equal(resp.Subtotal))
	assert.Equal(t, "999001", resp.VariableSymbol)
}

// ──────────────────────────────────────────────────────────────────────────────
// Standalone faktura
// ──────────────────────────────────────────────────────────────────────────────

// Standalone faktura s volnými položkami se záznamů nedotýká.
func TestCreateStandaloneInvoice_NesahaNaZaznamy(t *testing.T) {
	f := newFixture(t)
	ids := f.seedEntries(60)

	resp, err := f.uc.CreateStandaloneInvoice(context.Background(), testUserID, dto.CreateStandaloneInvoiceRequest{
		ClientName: "Jednorázový odběratel",
		IssueDate:  "2025-03-15",
		Items: []dto.StandaloneItemRequest{
			{Description: "Konzultace", Quantity: decimal.NewFromInt(2), Unit: "hod", UnitPrice: decimal.NewFromInt(1500)},
			{Description: "Licence", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceTypeStandalone, resp.InvoiceType)
	assert.Equal(t, "Jednorázový odběratel", resp.ClientName)
	assert.Empty(t, resp.ClientID)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(8000)), "subtotal: %s", resp.Subtotal)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "ks", resp.Items[1].Unit, "chybějící jednotka se doplní na ks")

	e, _ := f.entries.GetByID(testUserID, ids[0])
	assert.Equal(t, entity.BillingUnbilled, e.BillingStatus, "záznamy zůstávají nevyfakturované")
}

// Standalone s vybraným klientem přebírá snapshot z klienta.
func TestCreateStandaloneInvoice_SnapshotKlienta(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateStandaloneInvoice(context.Background(), testUserID, dto.CreateStandaloneInvoiceRequest{
		ClientID:  testClientID,
		IssueDate: "2025-03-15",
		Items: []dto.StandaloneItemRequest{
			{Description: "Paušál", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10000)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, testClientID, resp.ClientID)
	assert.Equal(t, "Acme a.s.", resp.ClientName)
	assert.Equal(t, "12345678", resp.ClientICO)
}

func TestCreateStandaloneInvoice_Validace(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateStandaloneInvoice(context.Background(), testUserID, dto.CreateStandaloneInvoiceRequest{
		IssueDate: "2025-03-15",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bez položek")

	_, err = f.uc.CreateStandaloneInvoice(context.Background(), testUserID, dto.CreateStandaloneInvoiceRequest{
		IssueDate: "2025-03-15",
		Items: []dto.StandaloneItemRequest{
			{Description: "Nulové množství", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "množství musí být kladné")
}
