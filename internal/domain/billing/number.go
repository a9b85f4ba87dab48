package billing

import "fmt"

// FormatInvoiceNumber složí číslo faktury <rok>-<pořadí> s pořadím
// doplněným nulami na čtyři místa, např. 2025-0007. Unikátní v rámci roku.
func FormatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}
