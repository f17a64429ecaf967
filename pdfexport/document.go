package pdfexport

import (
	"io"
	"strconv"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"
)

// item table column widths; they add up to bodyW
var itemCols = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Description", 85, "L"},
	{"Qty", 20, "R"},
	{"Rate", 30, "R"},
	{"Amount", 35, "R"},
}

// Invoice writes d with its payment history. d must be the computed record.
func Invoice(w io.Writer, h Header, d engine.Document, payments []models.InvoicePayment) error {
	title := "INVOICE"
	if d.Tax.Mode == engine.TaxGST {
		title = "TAX INVOICE"
	}
	p := newPage(title + " " + d.Number)
	p.letterhead(h, title)

	det, _ := d.Details.(engine.InvoiceDetails)
	p.meta(
		[2]string{"Invoice No.", d.Number},
		[2]string{"Issue date", day(d.IssueDate)},
		[2]string{"Status", string(d.Status)},
		[2]string{"Due date", day(det.DueDate)},
	)
	p.billTo(d.Party)
	p.items(d.Items)
	p.totals(d.Totals, true)

	if len(payments) > 0 {
		p.heading("Payments")
		for _, pm := range payments {
			ref := join(" / ", pm.Method, pm.Reference)
			p.text(40, day(pm.ReceivedAt), "L")
			p.text(bodyW-75, ref, "L")
			p.text(35, pm.Amount.String(), "R")
			p.pdf.Ln(lineH)
		}
	}
	if h.BankDetails != "" {
		p.heading("Bank details")
		p.para(h.BankDetails)
	}
	p.terms(d.Terms)
	return p.output(w)
}

// Quotation writes a quotation. d must be the computed record.
func Quotation(w io.Writer, h Header, d engine.Document) error {
	p := newPage("QUOTATION " + d.Number)
	p.letterhead(h, "QUOTATION")

	det, _ := d.Details.(engine.QuotationDetails)
	p.meta(
		[2]string{"Quotation No.", d.Number},
		[2]string{"Date", day(d.IssueDate)},
		[2]string{"Status", string(d.Status)},
		[2]string{"Valid until", day(det.ValidUntil)},
	)
	p.billTo(d.Party)
	p.items(d.Items)
	p.totals(d.Totals, false)
	p.terms(d.Terms)
	return p.output(w)
}

func (p *page) billTo(party engine.Party) {
	p.heading("Bill to")
	for _, l := range nonEmpty(
		party.Name,
		party.BillingAddress,
		join(", ", party.State, party.Pincode),
		prefixed("GSTIN: ", party.GSTIN),
	) {
		p.line(l)
	}
}

func (p *page) items(items []engine.LineItem) {
	p.pdf.Ln(3)
	p.font("B", 10)
	p.pdf.SetFillColor(235, 235, 235)
	for _, c := range itemCols {
		p.pdf.CellFormat(c.width, lineH+1, c.title, "1", 0, c.align, true, 0, "")
	}
	p.pdf.Ln(-1)

	p.font("", 10)
	for i, it := range items {
		cells := []string{
			strconv.Itoa(i + 1),
			p.tr(it.Description),
			it.Quantity.String(),
			it.Rate.String(),
			it.LineTotal.String(),
		}
		for j, c := range itemCols {
			p.pdf.CellFormat(c.width, lineH, cells[j], "1", 0, c.align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(2)
}

func (p *page) totals(t engine.Totals, withPayments bool) {
	p.amountRow("Subtotal", t.Subtotal, false)
	for _, tl := range t.Tax.Lines {
		p.amountRow(pct(tl.Label, tl.RatePercent), tl.Amount, false)
	}
	if t.Discount > 0 {
		p.amountRow("Discount", -t.Discount, false)
	}
	p.amountRow("Grand total", t.GrandTotal, true)
	if withPayments {
		p.amountRow("Paid", t.PaidAmount, false)
		p.amountRow("Balance due", t.Balance, true)
	}
}

func (p *page) terms(text string) {
	if text == "" {
		return
	}
	p.heading("Terms & conditions")
	p.font("", 9)
	p.para(text)
}
