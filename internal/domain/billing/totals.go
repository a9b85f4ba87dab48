package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals jsou souhrnné částky faktury.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// CalculateTotals spočítá mezisoučet, DPH a celkovou částku z položek.
// Subtotal = Σ množství × jednotková cena; TaxAmount = Subtotal × sazba / 100;
// TotalAmount = Subtotal + TaxAmount. Počítá se v plné přesnosti (decimal),
// zaokrouhlení řeší až prezentační vrstva. Sazba 0 je platná (neplátce DPH).
func CalculateTotals(items []ItemDraft, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Quantity.Mul(it.UnitPrice))
	}
	taxAmount := subtotal.Mul(taxRate).Div(hundred)
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: subtotal.Add(taxAmount),
	}
}
