package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Field identifiers reported by the commit gate.
const (
	FieldItems          = "items"
	FieldBillingAddress = "billing_address"
	FieldState          = "state"
	FieldGSTIN          = "gstin"
	FieldPincode        = "pincode"
	FieldDiscount       = "discount"
	FieldPaidAmount     = "paid_amount"
	FieldTaxRate        = "tax_rate"
)

// MaxQuantity is the largest quantity a line may carry.
var MaxQuantity = decimal.NewFromInt(1_000_000_000)

var (
	gstinPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// ItemField names a field of the i-th line, e.g. "items[2].rate".
func ItemField(i int, name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

// Validate lists every field that blocks a commit. An empty result means the
// document may be saved. It never modifies d. Rates are checked as given;
// everything else is read from a fresh recompute, so stale totals on d do not
// matter.
func Validate(d Document) []string {
	raw := d.Items
	d = Recompute(d)
	var v []string

	if len(d.Items) == 0 {
		v = append(v, FieldItems)
	}
	for i, it := range d.Items {
		if strings.TrimSpace(it.Description) == "" {
			v = append(v, ItemField(i, "description"))
		}
		rateOK := raw[i].Rate >= 0 && raw[i].Rate.InRange()
		if !rateOK {
			v = append(v, ItemField(i, "rate"))
		}
		if !it.Quantity.IsPositive() || it.Quantity.GreaterThan(MaxQuantity) ||
			(rateOK && !it.LineTotal.InRange()) {
			v = append(v, ItemField(i, "quantity"))
		}
	}
	if !d.Totals.Subtotal.InRange() && !hasItemField(v) {
		v = append(v, FieldItems)
	}

	p := d.Party
	if blank(p.BillingAddress) {
		v = append(v, FieldBillingAddress)
	}
	if d.Tax.Mode == TaxGST {
		if blank(p.State) {
			v = append(v, FieldState)
		}
		if p.CustomerType == CustomerBusiness {
			if blank(p.GSTIN) {
				v = append(v, FieldGSTIN)
			}
			if blank(p.Pincode) {
				v = append(v, FieldPincode)
			}
		}
	}
	if !blank(p.GSTIN) && !ValidGSTIN(p.GSTIN) && !contains(v, FieldGSTIN) {
		v = append(v, FieldGSTIN)
	}
	if !blank(p.Pincode) && !ValidPincode(p.Pincode) && !contains(v, FieldPincode) {
		v = append(v, FieldPincode)
	}

	if !d.Totals.TaxAmount.InRange() {
		v = append(v, FieldTaxRate)
	}
	if d.Totals.GrandTotal < 0 || !d.Totals.Discount.InRange() {
		v = append(v, FieldDiscount)
	}
	// overpaying is allowed and only raises a notice
	if d.Kind() == KindInvoice && !d.Totals.PaidAmount.InRange() {
		v = append(v, FieldPaidAmount)
	}
	return v
}

// ValidGSTIN checks the 15-character GSTIN layout, ignoring case.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

func ValidPincode(s string) bool { return pincodePattern.MatchString(strings.TrimSpace(s)) }

func hasItemField(list []string) bool {
	for _, x := range list {
		if strings.HasPrefix(x, "items[") {
			return true
		}
	}
	return false
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
