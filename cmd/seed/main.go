// seed vygeneruje SQL skript s demo daty (klient, fáze, pracovní záznamy,
// nastavení) a vypíše vývojový JWT pro ruční testování API.
//
// Použití: go run ./cmd/seed [user-id]
// Zapisuje: migrations/900_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkadlec/fakturace-api/pkg/jwt"
)

const outPath = "migrations/900_seed_demo.sql"

func main() {
	userID := uuid.NewString()
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}

	clientID := uuid.NewString()
	phaseID := uuid.NewString()

	var b strings.Builder
	b.WriteString("-- Demo data pro lokální vývoj. Negenerovat v produkci.\n")
	b.WriteString("BEGIN;\n\n")

	fmt.Fprintf(&b, "INSERT INTO settings (id, user_id, default_hourly_rate, currency, company_name, bank_account, default_due_days, default_tax_rate)\nVALUES ('%s', '%s', 850, 'Kč', 'Demo s.r.o.', '123456789/0100', 14, 21);\n\n",
		uuid.NewString(), userID)

	fmt.Fprintf(&b, "INSERT INTO clients (id, user_id, name, address, ico, hourly_rate)\nVALUES ('%s', '%s', 'Acme a.s.', 'Dlouhá 1, Praha', '12345678', 950);\n\n",
		clientID, userID)

	fmt.Fprintf(&b, "INSERT INTO phases (id, user_id, client_id, name, status, hourly_rate)\nVALUES ('%s', '%s', '%s', 'Analýza', 'active', 1100);\n\n",
		phaseID, userID, clientID)

	// Tři nevyfakturované záznamy v posledním týdnu
	now := time.Now()
	durations := []struct {
		start, end string
		desc       string
	}{
		{"09:00", "11:00", "Návrh datového modelu"},
		{"13:00", "14:30", "Konzultace s klientem"},
		{"10:00", "10:30", "Revize zadání"},
	}
	for i, d := range durations {
		date := now.AddDate(0, 0, -i-1).Format("2006-01-02")
		fmt.Fprintf(&b, "INSERT INTO entries (id, user_id, client_id, phase_id, date, start_time, end_time, description, billing_status)\nVALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', 'unbilled');\n\n",
			uuid.NewString(), userID, clientID, phaseID, date, d.start, d.end, d.desc)
	}

	b.WriteString("COMMIT;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "vytvoření adresáře: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "zápis skriptu: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("zapsáno %s (user_id=%s)\n", outPath, userID)

	// Vývojový token pro curl; vyžaduje JWT_SECRET v prostředí
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("JWT_SECRET není nastaven, token se negeneruje")
		return
	}
	token, err := jwt.Generate(secret, userID, "fakturace", 24*60)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generování tokenu: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Authorization: Bearer %s\n", token)
}
