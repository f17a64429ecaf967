package engine

// Totals is the derived money summary of a document. Discount and PaidAmount
// are inputs carried along so renderers get one record.
type Totals struct {
	Subtotal   Money        `json:"subtotal"`
	Tax        TaxBreakdown `json:"tax"`
	TaxAmount  Money        `json:"tax_amount"`
	Discount   Money        `json:"discount"`
	GrandTotal Money        `json:"grand_total"`
	PaidAmount Money        `json:"paid_amount"`
	Balance    Money        `json:"balance"`
}

// ComputeTotals composes the summary. The discount comes off after tax has
// been added: tax is always charged on the undiscounted subtotal.
func ComputeTotals(subtotal Money, tax TaxBreakdown, discount, paid Money) Totals {
	discount = discount.NonNegative()
	paid = paid.NonNegative()

	grand := subtotal + tax.Amount - discount
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		TaxAmount:  tax.Amount,
		Discount:   discount,
		GrandTotal: grand,
		PaidAmount: paid,
		Balance:    grand - paid,
	}
}

// Equal compares the figures a client may submit. The tax line layout is
// not part of the comparison.
func (t Totals) Equal(o Totals) bool {
	return t.Subtotal == o.Subtotal &&
		t.TaxAmount == o.TaxAmount &&
		t.Discount == o.Discount &&
		t.GrandTotal == o.GrandTotal &&
		t.PaidAmount == o.PaidAmount &&
		t.Balance == o.Balance
}
