// Package payment obsahuje pomocné funkce pro platební údaje: převod
// českého čísla účtu na IBAN a sestavení SPAYD řetězce pro QR platbu.
package payment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	accountRe = regexp.MustCompile(`^((?:[0-9]{0,6}-)?[0-9]{1,10})/([0-9]{4})$`)
	ibanRe    = regexp.MustCompile(`^CZ[0-9]{22}$`)
)

// mod97 spočítá zbytek MOD 97-10 nad číselným řetězcem po kouscích,
// aby se vešel do int64.
func mod97(s string) int {
	rem := 0
	for _, r := range s {
		rem = (rem*10 + int(r-'0')) % 97
	}
	return rem
}

// ConvertCzechAccountToIBAN převede účet ve tvaru (předčíslí-)?číslo/kód
// banky na IBAN, např. "4482411352/6363" -> "CZ...". Už hotový IBAN vrací
// beze změny. Pro nerozpoznaný formát vrací chybu.
func ConvertCzechAccountToIBAN(account string) (string, error) {
	clean := strings.Join(strings.Fields(account), "")

	m := accountRe.FindStringSubmatch(clean)
	if m == nil {
		if ibanRe.MatchString(clean) {
			return clean, nil
		}
		return "", fmt.Errorf("payment: nerozpoznaný formát účtu %q", account)
	}

	fullNumber, bankCode := m[1], m[2]
	prefix, number := "", fullNumber
	if i := strings.IndexByte(fullNumber, '-'); i >= 0 {
		prefix, number = fullNumber[:i], fullNumber[i+1:]
	}

	// BBAN: kód banky (4) + předčíslí (6) + číslo (10); CZ = 12 35.
	bban := fmt.Sprintf("%04s%06s%010s", bankCode, prefix, number)
	remainder := mod97(bban + "123500")
	checkDigits := 98 - remainder

	return fmt.Sprintf("CZ%02d%s", checkDigits, bban), nil
}

// SpaydParams parametry pro sestavení SPAYD řetězce.
type SpaydParams struct {
	AccountNumber  string // standardní formát nebo IBAN
	Amount         decimal.Decimal
	Currency       string // výchozí CZK
	VariableSymbol string
	ConstantSymbol string
	SpecificSymbol string
	Message        string
}

// GenerateSpaydString sestaví Short Payment Descriptor pro QR platbu.
// Zpráva se ořezává na 60 znaků a převádí na velká písmena.
func GenerateSpaydString(p SpaydParams) (string, error) {
	iban, err := ConvertCzechAccountToIBAN(p.AccountNumber)
	if err != nil {
		return "", err
	}

	currency := p.Currency
	if currency == "" {
		currency = "CZK"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SPD*1.0*ACC:%s*AM:%s*CC:%s", iban, p.Amount.StringFixed(2), currency)

	if p.VariableSymbol != "" {
		fmt.Fprintf(&b, "*X-VS:%s", p.VariableSymbol)
	}
	if p.ConstantSymbol != "" {
		fmt.Fprintf(&b, "*X-KS:%s", p.ConstantSymbol)
	}
	if p.SpecificSymbol != "" {
		fmt.Fprintf(&b, "*X-SS:%s", p.SpecificSymbol)
	}
	if p.Message != "" {
		msg := strings.ToUpper(p.Message)
		if len(msg) > 60 {
			msg = msg[:60]
		}
		fmt.Fprintf(&b, "*MSG:%s", msg)
	}

	return b.String(), nil
}
