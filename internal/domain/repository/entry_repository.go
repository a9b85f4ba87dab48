package repository

import (
	"time"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
)

// EntryFilters jsou volitelné filtry pro výpis pracovních záznamů.
type EntryFilters struct {
	ClientID      string
	PhaseID       string
	ProjectID     string
	DateFrom      *time.Time
	DateTo        *time.Time
	BillingStatus string
	Year          int
}

// EntryRepository definuje port persistence pro pracovní záznamy.
// Metody Claim*/MarkPaid*/Release* mutují fakturační stav a smí je volat
// pouze koordinátor fakturace uvnitř transakce.
type EntryRepository interface {
	Create(e *entity.Entry) error
	Update(e *entity.Entry) error
	Delete(userID, id string) error
	GetByID(userID, id string) (*entity.Entry, error)
	List(userID string, f EntryFilters) ([]*entity.Entry, error)
	// ListByIDs vrací záznamy uživatele pro dané ID včetně názvů fází.
	ListByIDs(userID string, ids []string) ([]*entity.Entry, error)
	// ListUnbilled vrací nevyfakturované záznamy, volitelně jen pro klienta.
	ListUnbilled(userID, clientID string) ([]*entity.Entry, error)

	// ClaimForInvoice podmíněně označí záznamy jako billed a připojí je
	// k faktuře: UPDATE ... WHERE id = ANY(ids) AND billing_status = 'unbilled'.
	// Vrací počet skutečně změněných řádků — nižší počet než len(ids)
	// znamená souběh s jinou fakturou.
	ClaimForInvoice(userID string, ids []string, invoiceID string) (int64, error)
	// MarkPaidByInvoice nastaví billing_status = 'paid' všem záznamům faktury.
	MarkPaidByInvoice(invoiceID string) error
	// ReleaseByInvoice vrátí záznamy faktury do stavu unbilled a odpojí je
	// (invoice_id = NULL). Volá se před smazáním faktury.
	ReleaseByInvoice(invoiceID string) error
}
