package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkadlec/fakturace-api/internal/application/dto"
	"github.com/mkadlec/fakturace-api/internal/domain"
	domainbilling "github.com/mkadlec/fakturace-api/internal/domain/billing"
	"github.com/mkadlec/fakturace-api/internal/domain/entity"
	"github.com/mkadlec/fakturace-api/internal/domain/repository"
	"github.com/mkadlec/fakturace-api/pkg/logger"
	"github.com/mkadlec/fakturace-api/pkg/payment"
)

// InvoiceUseCase je koordinátor fakturace — jediné místo, které smí
// měnit stav faktur a fakturační stav pracovních záznamů zároveň.
// Drží invariant: záznam je unbilled právě tehdy, když nemá invoice_id.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	entryRepo    repository.EntryRepository
	invoiceRepo  repository.InvoiceRepository
	clientRepo   repository.ClientRepository
	settingsRepo repository.SettingsRepository
	log          *logger.Logger
}

// NewInvoiceUseCase sestaví koordinátor.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	entryRepo repository.EntryRepository,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	settingsRepo repository.SettingsRepository,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		invoiceRepo:  invoiceRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// invoiceDefaults jsou hodnoty doplněné z nastavení uživatele.
type invoiceDefaults struct {
	dueDays     int
	taxRate     decimal.Decimal
	bankAccount string
	currency    string
}

// loadDefaults načte výchozí hodnoty z nastavení (mimo transakci, jen čtení).
func (uc *InvoiceUseCase) loadDefaults(userID string) (invoiceDefaults, error) {
	d := invoiceDefaults{dueDays: 14, currency: "Kč"}
	s, err := uc.settingsRepo.Get(userID)
	if err != nil {
		return d, err
	}
	if s != nil {
		if s.DefaultDueDays > 0 {
			d.dueDays = s.DefaultDueDays
		}
		d.taxRate = s.DefaultTaxRate
		d.bankAccount = s.BankAccount
		if s.Currency != "" {
			d.currency = s.Currency
		}
	}
	return d, nil
}

// resolveDates zparsuje datum vystavení a splatnosti; prázdná splatnost
// se dopočítá jako vystavení + výchozí počet dnů.
func resolveDates(issue, due string, dueDays int) (time.Time, time.Time, error) {
	issueDate, err := time.Parse(dto.DateLayout, issue)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if due == "" {
		return issueDate, issueDate.AddDate(0, 0, dueDays), nil
	}
	dueDate, err := time.Parse(dto.DateLayout, due)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return issueDate, dueDate, nil
}

// defaultVariableSymbol odvodí variabilní symbol z čísla faktury
// (2025-0007 → 20250007).
func defaultVariableSymbol(invoiceNumber string) string {
	return strings.ReplaceAll(invoiceNumber, "-", "")
}

// CreateLinkedInvoice vystaví fakturu z vybraných nevyfakturovaných záznamů.
// Celá sekvence (číslo faktury, hlavička, položky, označení záznamů) běží
// v jedné transakci; záznamy se uvnitř ní znovu ověřují podmíněným UPDATE,
// takže souběžné vystavení nad stejnými záznamy skončí ErrEntryAlreadyClaimed.
func (uc *InvoiceUseCase) CreateLinkedInvoice(ctx context.Context, userID string, in dto.CreateLinkedInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.EntryIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(userID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	defaults, err := uc.loadDefaults(userID)
	if err != nil {
		return nil, err
	}
	issueDate, dueDate, err := resolveDates(in.IssueDate, in.DueDate, defaults.dueDays)
	if err != nil {
		return nil, err
	}
	taxRate := defaults.taxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	bankAccount := in.BankAccount
	if bankAccount == "" {
		bankAccount = defaults.bankAccount
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		entryRepo repository.EntryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Načíst záznamy a znovu ověřit, že jsou nevyfakturované.
		// Výběr v UI mohl mezitím zastarat.
		entries, err := entryRepo.ListByIDs(userID, in.EntryIDs)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrNoBillableEntries
		}
		for _, e := range entries {
			if e.ClientID != in.ClientID {
				return domain.ErrInvalidInput
			}
			if e.BillingStatus != entity.BillingUnbilled {
				return domain.ErrNoBillableEntries
			}
		}

		// 2) Seskupit záznamy do položek a spočítat částky.
		grouped, err := domainbilling.GroupEntries(entries, in.GroupBy)
		if err != nil {
			return err
		}
		for _, desc := range grouped.MixedRates {
			uc.log.Warn().
				Str("invoice_id", invoiceID).
				Str("group", desc).
				Msg("skupina má záznamy s různými sazbami, použita sazba prvního záznamu")
		}
		totals := domainbilling.CalculateTotals(grouped.Items, taxRate)

		// 3) Číslo faktury — serializované po rocích (advisory lock v tx).
		seq, err := invoiceRepo.NextNumber(userID, now.Year())
		if err != nil {
			return err
		}
		number := domainbilling.FormatInvoiceNumber(now.Year(), seq)

		variableSymbol := in.VariableSymbol
		if variableSymbol == "" {
			variableSymbol = defaultVariableSymbol(number)
		}

		// 4) Hlavička ve stavu draft + položky v pořadí seskupení.
		clientID := in.ClientID
		inv = &entity.Invoice{
			ID:             invoiceID,
			UserID:         userID,
			ClientID:       &clientID,
			ClientName:     client.Name,
			ClientAddress:  client.Address,
			ClientICO:      client.ICO,
			InvoiceNumber:  number,
			IssueDate:      issueDate,
			DueDate:        dueDate,
			InvoiceType:    entity.InvoiceTypeLinked,
			Status:         entity.InvoiceStatusDraft,
			Subtotal:       totals.Subtotal,
			TaxRate:        taxRate,
			TaxAmount:      totals.TaxAmount,
			TotalAmount:    totals.TotalAmount,
			Currency:       defaults.currency,
			VariableSymbol: variableSymbol,
			BankAccount:    bankAccount,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		items = buildItems(inv.ID, grouped.Items, now)
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}

		// 5) Podmíněně označit záznamy jako billed. Počet změněných řádků
		// musí sedět — jinak je mezitím zabrala jiná faktura a vše se odrolovává.
		claimed, err := entryRepo.ClaimForInvoice(userID, in.EntryIDs, inv.ID)
		if err != nil {
			return err
		}
		if claimed != int64(len(in.EntryIDs)) {
			return domain.ErrEntryAlreadyClaimed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Int("entries", len(in.EntryIDs)).
		Str("total", inv.TotalAmount.String()).
		Msg("vystavena faktura ze záznamů")

	return uc.toResponse(inv, items, now), nil
}

// CreateStandaloneInvoice vystaví fakturu s volnými položkami; pracovních
// záznamů se nedotýká.
func (uc *InvoiceUseCase) CreateStandaloneInvoice(ctx context.Context, userID string, in dto.CreateStandaloneInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.Description == "" || !it.Quantity.GreaterThan(decimal.Zero) || it.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Snapshot odběratele: z klienta, pokud je vybraný, jinak z textových polí.
	var clientID *string
	clientName, clientAddress, clientICO := in.ClientName, in.ClientAddress, in.ClientICO
	if in.ClientID != "" {
		client, err := uc.clientRepo.GetByID(userID, in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
		id := in.ClientID
		clientID = &id
		clientName, clientAddress, clientICO = client.Name, client.Address, client.ICO
	}

	defaults, err := uc.loadDefaults(userID)
	if err != nil {
		return nil, err
	}
	issueDate, dueDate, err := resolveDates(in.IssueDate, in.DueDate, defaults.dueDays)
	if err != nil {
		return nil, err
	}
	taxRate := defaults.taxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	bankAccount := in.BankAccount
	if bankAccount == "" {
		bankAccount = defaults.bankAccount
	}

	drafts := make([]domainbilling.ItemDraft, 0, len(in.Items))
	for _, it := range in.Items {
		unit := it.Unit
		if unit == "" {
			unit = "ks"
		}
		drafts = append(drafts, domainbilling.ItemDraft{
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        unit,
			UnitPrice:   it.UnitPrice,
		})
	}
	totals := domainbilling.CalculateTotals(drafts, taxRate)

	now := time.Now()
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.EntryRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		seq, err := invoiceRepo.NextNumber(userID, now.Year())
		if err != nil {
			return err
		}
		number := domainbilling.FormatInvoiceNumber(now.Year(), seq)

		variableSymbol := in.VariableSymbol
		if variableSymbol == "" {
			variableSymbol = defaultVariableSymbol(number)
		}

		inv = &entity.Invoice{
			ID:             uuid.New().String(),
			UserID:         userID,
			ClientID:       clientID,
			ClientName:     clientName,
			ClientAddress:  clientAddress,
			ClientICO:      clientICO,
			InvoiceNumber:  number,
			IssueDate:      issueDate,
			DueDate:        dueDate,
			InvoiceType:    entity.InvoiceTypeStandalone,
			Status:         entity.InvoiceStatusDraft,
			Subtotal:       totals.Subtotal,
			TaxRate:        taxRate,
			TaxAmount:      totals.TaxAmount,
			TotalAmount:    totals.TotalAmount,
			Currency:       defaults.currency,
			VariableSymbol: variableSymbol,
			BankAccount:    bankAccount,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		items = buildItems(inv.ID, drafts, now)
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("total", inv.TotalAmount.String()).
		Msg("vystavena standalone faktura")

	return uc.toResponse(inv, items, now), nil
}

// buildItems převede podklady na položky faktury; sort_order podle pořadí.
func buildItems(invoiceID string, drafts []domainbilling.ItemDraft, now time.Time) []*entity.InvoiceItem {
	items := make([]*entity.InvoiceItem, 0, len(drafts))
	for i, d := range drafts {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			EntryID:     d.EntryID,
			PhaseID:     d.PhaseID,
			Description: d.Description,
			Quantity:    d.Quantity,
			Unit:        d.Unit,
			UnitPrice:   d.UnitPrice,
			TotalPrice:  d.Quantity.Mul(d.UnitPrice),
			SortOrder:   i,
			CreatedAt:   now,
		})
	}
	return items
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, items []*entity.InvoiceItem, now time.Time) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		ClientICO:      inv.ClientICO,
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      inv.IssueDate.Format(dto.DateLayout),
		DueDate:        inv.DueDate.Format(dto.DateLayout),
		InvoiceType:    inv.InvoiceType,
		Status:         inv.Status,
		DisplayStatus:  domainbilling.DisplayStatus(inv.Status, inv.DueDate, now),
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		TotalAmount:    inv.TotalAmount,
		Currency:       inv.Currency,
		VariableSymbol: inv.VariableSymbol,
		BankAccount:    inv.BankAccount,
		Notes:          inv.Notes,
	}
	if inv.ClientID != nil {
		resp.ClientID = *inv.ClientID
	}
	if inv.PaidAt != nil {
		resp.PaidAt = inv.PaidAt.Format(time.RFC3339)
	}
	// SPAYD pro QR platbu; u nerozpoznaného účtu se pole vynechá
	if inv.BankAccount != "" && inv.Status != entity.InvoiceStatusPaid {
		spayd, err := payment.GenerateSpaydString(payment.SpaydParams{
			AccountNumber:  inv.BankAccount,
			Amount:         inv.TotalAmount,
			VariableSymbol: inv.VariableSymbol,
			Message:        "Faktura " + inv.InvoiceNumber,
		})
		if err == nil {
			resp.QRPayment = spayd
		}
	}
	for _, it := range items {
		itemResp := dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			SortOrder:   it.SortOrder,
		}
		if it.EntryID != nil {
			itemResp.EntryID = *it.EntryID
		}
		if it.PhaseID != nil {
			itemResp.PhaseID = *it.PhaseID
		}
		resp.Items = append(resp.Items, itemResp)
	}
	return resp
}
