package engine

import (
	"errors"
	"time"
)

type Kind string

const (
	KindInvoice   Kind = "INVOICE"
	KindQuotation Kind = "QUOTATION"
)

var ErrWrongKind = errors.New("operation not valid for this document kind")

type CustomerType string

const (
	CustomerIndividual CustomerType = "INDIVIDUAL"
	CustomerBusiness   CustomerType = "BUSINESS"
)

// Party is the bill-to side of a document.
type Party struct {
	Name           string       `json:"name"`
	CustomerType   CustomerType `json:"customer_type"`
	BillingAddress string       `json:"billing_address"`
	State          string       `json:"state"`
	Pincode        string       `json:"pincode"`
	GSTIN          string       `json:"gstin"`
}

// Details holds the fields only one kind of document has. It is implemented
// by InvoiceDetails and QuotationDetails only.
type Details interface {
	Kind() Kind
	sealed()
}

type InvoiceDetails struct {
	DueDate    time.Time `json:"due_date"`
	PaidAmount Money     `json:"paid_amount"`
}

func (InvoiceDetails) Kind() Kind { return KindInvoice }
func (InvoiceDetails) sealed()    {}

type QuotationDetails struct {
	ValidUntil time.Time `json:"valid_until"`
}

func (QuotationDetails) Kind() Kind { return KindQuotation }
func (QuotationDetails) sealed()    {}

// Document is an invoice or a quotation in an edit session: raw inputs plus
// everything derived from them. Totals, Notices and (for invoices in an auto
// status) Status are overwritten by Recompute.
type Document struct {
	Number    string     `json:"number"`
	IssueDate time.Time  `json:"issue_date"`
	Party     Party      `json:"party"`
	Items     []LineItem `json:"items"`
	Tax       TaxConfig  `json:"tax"`
	Discount  Money      `json:"discount"`
	Terms     string     `json:"terms"`
	Status    Status     `json:"status"`
	Details   Details    `json:"details"`

	Totals  Totals   `json:"totals"`
	Notices []Notice `json:"notices,omitempty"`
}

// NewInvoice starts with an unset status, so the first recompute puts it on
// payment tracking.
func NewInvoice() Document {
	return Recompute(Document{
		Tax:     TaxConfig{Mode: TaxNone},
		Details: InvoiceDetails{},
	})
}

func NewQuotation() Document {
	return Recompute(Document{
		Tax:     TaxConfig{Mode: TaxNone},
		Status:  QuotationDraft,
		Details: QuotationDetails{},
	})
}

// Kind defaults to invoice when Details was never set.
func (d Document) Kind() Kind {
	if d.Details == nil {
		return KindInvoice
	}
	return d.Details.Kind()
}

// PaidAmount is always zero for quotations.
func (d Document) PaidAmount() Money {
	if inv, ok := d.Details.(InvoiceDetails); ok {
		return inv.PaidAmount
	}
	return 0
}

// Recompute runs the whole pipeline: lines, tax, totals, status. It is the
// only place derived fields are written.
func Recompute(d Document) Document {
	if d.Details == nil {
		d.Details = InvoiceDetails{}
	}
	items, subtotal, notices := AggregateLines(d.Items)
	d.Items = items
	d.Discount = d.Discount.NonNegative()

	if inv, ok := d.Details.(InvoiceDetails); ok {
		inv.PaidAmount = inv.PaidAmount.NonNegative()
		d.Details = inv
	}

	tax := ComputeTax(subtotal, d.Tax)
	d.Totals = ComputeTotals(subtotal, tax, d.Discount, d.PaidAmount())
	d.Status = ResolveStatus(d.Kind(), d.Status, d.Totals)
	if d.Kind() == KindInvoice && d.Totals.PaidAmount > 0 && d.Totals.Balance < 0 {
		notices = append(notices, Notice{
			Kind:  Overpaid,
			Field: FieldPaidAmount,
			From:  d.Totals.PaidAmount,
			To:    d.Totals.GrandTotal,
		})
	}
	d.Notices = notices
	return d
}

// Clone deep-copies the mutable parts so a reducer step never aliases the
// prior state.
func (d Document) Clone() Document {
	d.Items = cloneItems(d.Items)
	if d.Notices != nil {
		d.Notices = append([]Notice(nil), d.Notices...)
	}
	if d.Totals.Tax.Lines != nil {
		d.Totals.Tax.Lines = append([]TaxLine(nil), d.Totals.Tax.Lines...)
	}
	return d
}

// ConvertToInvoice builds a fresh invoice from an approved quotation. Nothing
// is paid yet and the status is left unset for payment tracking.
func ConvertToInvoice(q Document, issued, due time.Time) (Document, error) {
	if err := CanConvert(q); err != nil {
		return Document{}, err
	}
	inv := q.Clone()
	inv.Number = ""
	inv.IssueDate = issued
	inv.Status = ""
	inv.Details = InvoiceDetails{DueDate: due}
	return Recompute(inv), nil
}
