package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"
)

var header = Header{
	Name:        "Kaveri Systems Pvt Ltd",
	Address:     "3rd Floor, 80 Ft Road, Indiranagar",
	State:       "Karnataka",
	Pincode:     "560038",
	GSTIN:       "29AAACK1234L1Z2",
	BankDetails: "HDFC Bank, A/c 50100012345678, IFSC HDFC0000123",
}

func invoice(t *testing.T) engine.Document {
	t.Helper()
	d, err := engine.ApplyAll(engine.NewInvoice(),
		engine.SetParty{Party: engine.Party{Name: "Acme Traders", BillingAddress: "12 MG Road", State: "Karnataka"}},
		engine.AddItem{Item: engine.LineItem{ID: "l1", Description: "Widget"}},
		engine.SetQuantity{Index: 0, Raw: "2"},
		engine.SetRate{Index: 0, Raw: "500"},
		engine.SetTaxMode{Mode: engine.TaxGST},
		engine.SetTaxRate{Raw: "18"},
		engine.SetDiscount{Raw: "100"},
		engine.SetPaidAmount{Raw: "500"},
		engine.SetTerms{Text: "Payment due within 30 days."},
	)
	if err != nil {
		t.Fatal(err)
	}
	d.Number = "INV-2026-000001"
	d.IssueDate = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	return d
}

func plain(t *testing.T) {
	t.Helper()
	compress = false
	t.Cleanup(func() { compress = true })
}

func TestInvoice(t *testing.T) {
	plain(t)
	var buf bytes.Buffer
	payments := []models.InvoicePayment{{Amount: engine.FromMajor(500), Method: "UPI", Reference: "TXN-1", ReceivedAt: time.Now()}}
	if err := Invoice(&buf, header, invoice(t), payments); err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF") {
		t.Fatalf("not a PDF: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"TAX INVOICE", "INV-2026-000001", "CGST @ 9%", "1080.00", "580.00", "TXN-1", "HDFC0000123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
}

func TestInvoicePrintsFiguresAsGiven(t *testing.T) {
	plain(t)
	d := invoice(t)
	d.Totals.GrandTotal = engine.FromMajor(4321)

	var buf bytes.Buffer
	if err := Invoice(&buf, header, d, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "4321.00") || strings.Contains(buf.String(), "1080.00") {
		t.Error("grand total was recalculated instead of printed")
	}
}

func TestQuotation(t *testing.T) {
	plain(t)
	q := engine.NewQuotation()
	q.Number = "QT-2026-000004"
	q.Party = engine.Party{Name: "Zen Café", BillingAddress: "5 Beach Rd"}
	q.Items = make([]engine.LineItem, 60) // forces a page break
	for i := range q.Items {
		q.Items[i] = engine.LineItem{Description: fmt.Sprintf("Item %d", i)}
	}
	q = engine.Recompute(q)

	var buf bytes.Buffer
	if err := Quotation(&buf, Header{Name: "Kaveri"}, q); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF") || !strings.Contains(out, "QT-2026-000004") {
		t.Error("quotation output incomplete")
	}
	if strings.Contains(out, "Balance due") {
		t.Error("quotation printed a balance")
	}
}

func TestOffer(t *testing.T) {
	plain(t)
	o, err := engine.ApplyOffer(engine.NewOffer(), engine.SetCandidate{Name: "Asha Menon", Designation: "Engineer"})
	if err != nil {
		t.Fatal(err)
	}
	o, _ = engine.ApplyOffer(o, engine.SetBasic{Raw: "30000"})
	o, _ = engine.ApplyOffer(o, engine.AddAllowance{Name: "Conveyance", Raw: "1600"})
	o, _ = engine.ApplyOffer(o, engine.SetDeduction{Name: "pf", Raw: "1800"})

	var buf bytes.Buffer
	if err := Offer(&buf, header, "OL-2026-000001", time.Now(), o); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"%PDF", "Asha Menon", "31600.00", "29800.00", "400800.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("offer lacks %q", want)
		}
	}

	o, _ = engine.ApplyOffer(o, engine.SetPackageMode{Mode: engine.PackageSimple})
	o, _ = engine.ApplyOffer(o, engine.SetMonthly{Raw: "50000"})
	buf.Reset()
	if err := Offer(&buf, header, "OL-2026-000002", time.Now(), o); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "600000.00") || strings.Contains(buf.String(), "Basic") {
		t.Error("simple package offer printed the wrong section")
	}
}

func TestHeaderOf(t *testing.T) {
	h := HeaderOf(models.Business{Name: "Kaveri", GSTIN: "29AAACK1234L1Z2", BankDetails: "x"})
	if h.Name != "Kaveri" || h.GSTIN != "29AAACK1234L1Z2" || h.BankDetails != "x" {
		t.Errorf("HeaderOf = %+v", h)
	}
}
