package billing

import (
	"time"

	"github.com/mkadlec/fakturace-api/internal/domain/entity"
)

// allowedTransitions jsou povolené zapisovatelné přechody stavu faktury.
// Koncové stavy: paid, cancelled. Do "overdue" se nikdy nezapisuje —
// je odvozený (IsOverdue); z něj lze jen zaplatit.
var allowedTransitions = map[string]map[string]bool{
	entity.InvoiceStatusDraft: {
		entity.InvoiceStatusIssued: true,
	},
	entity.InvoiceStatusIssued: {
		entity.InvoiceStatusSent: true,
		entity.InvoiceStatusPaid: true,
	},
	entity.InvoiceStatusSent: {
		entity.InvoiceStatusPaid: true,
	},
	entity.InvoiceStatusOverdue: {
		entity.InvoiceStatusPaid: true,
	},
}

// CanTransition vrací true, pokud je přechod from → to povolený.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// IsTerminal vrací true pro koncové stavy, ze kterých nevede žádný přechod.
func IsTerminal(status string) bool {
	return status == entity.InvoiceStatusPaid || status == entity.InvoiceStatusCancelled
}

// IsOverdue vrací true, pokud je faktura po splatnosti: vystavená nebo
// odeslaná a den splatnosti je před dnešním dnem. Čistě odvozený stav,
// do databáze se nezapisuje.
func IsOverdue(status string, dueDate, now time.Time) bool {
	if status != entity.InvoiceStatusIssued && status != entity.InvoiceStatusSent {
		return false
	}
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// DisplayStatus vrací stav pro zobrazení: uložený stav, případně "overdue",
// pokud je faktura po splatnosti.
func DisplayStatus(status string, dueDate, now time.Time) string {
	if IsOverdue(status, dueDate, now) {
		return entity.InvoiceStatusOverdue
	}
	return status
}
