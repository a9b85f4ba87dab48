package domain

import "errors"

// Doménové chyby (bez externích závislostí).
var (
	ErrNotFound            = errors.New("záznam nenalezen")
	ErrInvoiceNotFound     = errors.New("faktura nenalezena")
	ErrEntryNotFound       = errors.New("pracovní záznam nenalezen")
	ErrNoBillableEntries   = errors.New("žádné záznamy k fakturaci")
	ErrEntryAlreadyClaimed = errors.New("záznam už je vyfakturován jinou fakturou")
	ErrInvalidTransition   = errors.New("nepovolený přechod stavu faktury")
	ErrInvalidInput        = errors.New("neplatný vstup")
	ErrDuplicate           = errors.New("duplicitní záznam")
)
