package engine

import (
	"errors"
	"testing"
	"time"
)

func totalsWith(grand, paid Money) Totals {
	return ComputeTotals(grand, TaxBreakdown{}, 0, paid)
}

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		name        string
		grand, paid Money
		want        Status
	}{
		{"nothing paid", 108000, 0, InvoiceUnpaid},
		{"zero value invoice nothing paid", 0, 0, InvoiceUnpaid},
		{"part paid", 108000, 50000, InvoicePartial},
		{"fully paid", 108000, 108000, InvoicePaid},
		{"overpaid", 108000, 200000, InvoicePaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaymentStatus(totalsWith(tt.grand, tt.paid)); got != tt.want {
				t.Errorf("PaymentStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveStatusKeepsManualStates(t *testing.T) {
	paidInFull := totalsWith(108000, 108000)
	partly := totalsWith(108000, 1000)
	nothing := totalsWith(108000, 0)

	manual := []Status{InvoiceDraft, InvoiceSent, InvoiceCancelled}
	for _, st := range manual {
		for _, tot := range []Totals{paidInFull, partly, nothing} {
			if got := ResolveStatus(KindInvoice, st, tot); got != st {
				t.Errorf("ResolveStatus(%s, paid=%d) = %s, want unchanged", st, tot.PaidAmount, got)
			}
		}
	}

	auto := []Status{"", InvoiceUnpaid, InvoicePartial, InvoicePaid}
	for _, st := range auto {
		if got := ResolveStatus(KindInvoice, st, paidInFull); got != InvoicePaid {
			t.Errorf("ResolveStatus(%q) = %s, want PAID", st, got)
		}
	}
}

func TestQuotationStatusIsNeverDerived(t *testing.T) {
	for _, st := range []Status{QuotationDraft, QuotationPending, QuotationApproved, QuotationRejected} {
		if got := ResolveStatus(KindQuotation, st, totalsWith(1000, 1000)); got != st {
			t.Errorf("ResolveStatus(quotation %s) = %s", st, got)
		}
	}
	if got := ResolveStatus(KindQuotation, "", Totals{}); got != QuotationDraft {
		t.Errorf("unset quotation status = %s, want DRAFT", got)
	}
}

func TestTransition(t *testing.T) {
	unpaid := totalsWith(108000, 0)
	paid := totalsWith(108000, 108000)

	tests := []struct {
		name    string
		kind    Kind
		current Status
		target  Status
		totals  Totals
		want    Status
		wantErr error
	}{
		{"invoice draft to sent", KindInvoice, InvoiceDraft, InvoiceSent, unpaid, InvoiceSent, nil},
		{"cancel a paid invoice", KindInvoice, InvoicePaid, InvoiceCancelled, paid, InvoiceCancelled, nil},
		{"re-open cancelled", KindInvoice, InvoiceCancelled, InvoiceDraft, paid, InvoiceDraft, nil},
		{"cannot force paid", KindInvoice, InvoiceSent, InvoicePaid, unpaid, InvoiceUnpaid, nil},
		{"back to tracking", KindInvoice, InvoiceSent, InvoiceUnpaid, paid, InvoicePaid, nil},
		{"quotation approve", KindQuotation, QuotationPending, QuotationApproved, Totals{}, QuotationApproved, nil},
		{"quotation re-open", KindQuotation, QuotationRejected, QuotationDraft, Totals{}, QuotationDraft, nil},
		{"invoice status on quotation", KindQuotation, QuotationDraft, InvoicePaid, Totals{}, QuotationDraft, ErrUnknownStatus},
		{"quotation status on invoice", KindInvoice, InvoiceDraft, QuotationApproved, unpaid, InvoiceDraft, ErrUnknownStatus},
		{"garbage", KindInvoice, InvoiceDraft, "ARCHIVED", unpaid, InvoiceDraft, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.kind, tt.current, tt.target, tt.totals)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus(KindInvoice, " partial "); err != nil || st != InvoicePartial {
		t.Errorf("got %s, %v", st, err)
	}
	if _, err := ParseStatus(KindQuotation, "sent"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("SENT is not a quotation status, got err %v", err)
	}
}

func TestTerminalStates(t *testing.T) {
	if !KindInvoice.IsTerminal(InvoiceCancelled) || KindInvoice.IsTerminal(InvoicePaid) {
		t.Error("invoice terminal states")
	}
	if !KindQuotation.IsTerminal(QuotationApproved) || !KindQuotation.IsTerminal(QuotationRejected) || KindQuotation.IsTerminal(QuotationPending) {
		t.Error("quotation terminal states")
	}
}

func TestConvertToInvoice(t *testing.T) {
	q, err := ApplyAll(NewQuotation(),
		AddItem{Item: LineItem{Description: "Audit", Quantity: pct("1"), Rate: FromMajor(5000)}},
		SetTaxMode{Mode: TaxGST},
		SetTaxRate{Raw: "18"},
		SetTerms{Text: "Net 30"},
	)
	if err != nil {
		t.Fatalf("build quotation: %v", err)
	}

	if _, err := ConvertToInvoice(q, time.Now(), time.Now()); !errors.Is(err, ErrQuotationNotApproved) {
		t.Fatalf("draft quotation converted, err = %v", err)
	}

	q, err = Apply(q, SetStatus{Target: QuotationApproved})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	due := time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)
	inv, err := ConvertToInvoice(q, due.AddDate(0, 0, -30), due)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if inv.Kind() != KindInvoice || inv.Status != InvoiceUnpaid {
		t.Errorf("kind %s status %s", inv.Kind(), inv.Status)
	}
	if inv.Totals.GrandTotal != FromMajor(5900) || inv.Terms != "Net 30" {
		t.Errorf("totals %+v terms %q", inv.Totals, inv.Terms)
	}
	if d := inv.Details.(InvoiceDetails); !d.DueDate.Equal(due) || d.PaidAmount != 0 {
		t.Errorf("details %+v", d)
	}

	inv.Items[0].Description = "changed"
	if q.Items[0].Description != "Audit" {
		t.Error("invoice aliases quotation items")
	}

	if _, err := ConvertToInvoice(inv, due, due); !errors.Is(err, ErrWrongKind) {
		t.Errorf("converting an invoice: err = %v", err)
	}
}
