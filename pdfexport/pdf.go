// Package pdfexport renders stored documents. Every figure is printed as it
// arrives; nothing here recalculates totals.
package pdfexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"

	"github.com/jung-kurt/gofpdf"
)

const (
	margin = 15.0
	bodyW  = 210.0 - 2*margin
	lineH  = 6.0
)

// compress is switched off by tests so the page text can be searched.
var compress = true

// Header is the issuing business as printed at the top of every page one.
type Header struct {
	Name        string
	Address     string
	State       string
	Pincode     string
	GSTIN       string
	Email       string
	Phone       string
	BankDetails string
}

func HeaderOf(b models.Business) Header {
	return Header{
		Name:        b.Name,
		Address:     b.Address,
		State:       b.State,
		Pincode:     b.Pincode,
		GSTIN:       b.GSTIN,
		Email:       b.Email,
		Phone:       b.Phone,
		BankDetails: b.BankDetails,
	}
}

type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(title string) *page {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCompression(compress)
	pdf.SetTitle(title, true)
	pdf.SetCreator("go-bizops-dashboard", false)
	pdf.AddPage()
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *page) font(style string, size float64) { p.pdf.SetFont("Helvetica", style, size) }

func (p *page) text(w float64, s, align string) {
	p.pdf.CellFormat(w, lineH, p.tr(s), "", 0, align, false, 0, "")
}

func (p *page) line(s string) {
	p.pdf.CellFormat(bodyW, lineH, p.tr(s), "", 1, "L", false, 0, "")
}

func (p *page) para(s string) {
	p.pdf.MultiCell(bodyW, 5, p.tr(s), "", "L", false)
}

func (p *page) heading(s string) {
	p.pdf.Ln(3)
	p.font("B", 11)
	p.line(s)
	p.font("", 10)
}

// letterhead prints the business block on the left and the title on the right.
func (p *page) letterhead(h Header, title string) {
	p.font("B", 16)
	p.text(bodyW/2, h.Name, "L")
	p.text(bodyW/2, title, "R")
	p.pdf.Ln(lineH + 2)

	p.font("", 9)
	for _, l := range nonEmpty(
		h.Address,
		join(", ", h.State, h.Pincode),
		prefixed("GSTIN: ", h.GSTIN),
		join("  ", prefixed("Email: ", h.Email), prefixed("Phone: ", h.Phone)),
	) {
		p.line(l)
	}
	p.pdf.Ln(2)
	x, y := p.pdf.GetXY()
	p.pdf.Line(x, y, x+bodyW, y)
	p.pdf.Ln(3)
	p.font("", 10)
}

// meta prints label/value pairs two to a row.
func (p *page) meta(pairs ...[2]string) {
	for i, kv := range pairs {
		p.font("B", 10)
		p.text(30, kv[0], "L")
		p.font("", 10)
		p.text(bodyW/2-30, kv[1], "L")
		if i%2 == 1 || i == len(pairs)-1 {
			p.pdf.Ln(lineH)
		}
	}
}

// amountRow prints a right-aligned label and amount at the foot of a table.
func (p *page) amountRow(label string, m engine.Money, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	p.font(style, 10)
	p.pdf.CellFormat(bodyW-35, lineH, p.tr(label), "", 0, "R", false, 0, "")
	p.pdf.CellFormat(35, lineH, m.String(), "", 1, "R", false, 0, "")
}

func (p *page) output(w io.Writer) error {
	if err := p.pdf.Error(); err != nil {
		return err
	}
	return p.pdf.Output(w)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func join(sep string, parts ...string) string {
	return strings.Join(nonEmpty(parts...), sep)
}

func prefixed(prefix, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return prefix + s
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, s := range parts {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func pct(label string, rate fmt.Stringer) string {
	return fmt.Sprintf("%s @ %s%%", label, rate)
}
