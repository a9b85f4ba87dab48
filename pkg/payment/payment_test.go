package payment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/fakturace-api/pkg/payment"
)

func TestConvertCzechAccountToIBAN(t *testing.T) {
	cases := []struct {
		account string
		iban    string
	}{
		{"4482411352/6363", "CZ5063630000004482411352"},
		// účet s předčíslím (referenční příklad ČNB)
		{"19-2000145399/0800", "CZ6508000000192000145399"},
		{"123456789/0100", "CZ1801000000000123456789"},
		// mezery se ignorují
		{" 4482411352 / 6363 ", "CZ5063630000004482411352"},
	}
	for _, c := range cases {
		got, err := payment.ConvertCzechAccountToIBAN(c.account)
		require.NoError(t, err, c.account)
		assert.Equal(t, c.iban, got, c.account)
	}
}

func TestConvertCzechAccountToIBAN_HotovyIBAN(t *testing.T) {
	got, err := payment.ConvertCzechAccountToIBAN("CZ5063630000004482411352")
	require.NoError(t, err)
	assert.Equal(t, "CZ5063630000004482411352", got)
}

func TestConvertCzechAccountToIBAN_NeplatnyFormat(t *testing.T) {
	for _, account := range []string{"", "abc", "4482411352", "4482411352/63", "DE89370400440532013000"} {
		_, err := payment.ConvertCzechAccountToIBAN(account)
		assert.Error(t, err, "účet %q", account)
	}
}

func TestGenerateSpaydString(t *testing.T) {
	spayd, err := payment.GenerateSpaydString(payment.SpaydParams{
		AccountNumber:  "4482411352/6363",
		Amount:         decimal.RequireFromString("3630"),
		VariableSymbol: "20250001",
		Message:        "Faktura 2025-0001",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SPD*1.0*ACC:CZ5063630000004482411352*AM:3630.00*CC:CZK*X-VS:20250001*MSG:FAKTURA 2025-0001",
		spayd)
}

func TestGenerateSpaydString_VolitelnaPole(t *testing.T) {
	spayd, err := payment.GenerateSpaydString(payment.SpaydParams{
		AccountNumber: "123456789/0100",
		Amount:        decimal.RequireFromString("1234.5"),
		Currency:      "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "SPD*1.0*ACC:CZ1801000000000123456789*AM:1234.50*CC:EUR", spayd)
}

func TestGenerateSpaydString_NeplatnyUcet(t *testing.T) {
	_, err := payment.GenerateSpaydString(payment.SpaydParams{
		AccountNumber: "nic",
		Amount:        decimal.NewFromInt(100),
	})
	assert.Error(t, err)
}
