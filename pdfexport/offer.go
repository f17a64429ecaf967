package pdfexport

import (
	"fmt"
	"io"
	"time"

	"go-bizops-dashboard/engine"
)

// Offer writes an offer letter. Only the compensation mode the offer uses is
// printed.
func Offer(w io.Writer, h Header, number string, issued time.Time, o engine.Offer) error {
	p := newPage("OFFER LETTER " + number)
	p.letterhead(h, "OFFER LETTER")
	p.meta(
		[2]string{"Ref.", number},
		[2]string{"Date", day(issued)},
	)

	p.pdf.Ln(3)
	p.line("Dear " + o.CandidateName + ",")
	p.pdf.Ln(2)
	role := o.Designation
	if o.Department != "" {
		role += " in the " + o.Department + " department"
	}
	body := fmt.Sprintf("We are pleased to offer you the position of %s at %s.", role, h.Name)
	if !o.JoiningDate.IsZero() {
		body += fmt.Sprintf(" Your date of joining will be %s.", day(o.JoiningDate))
	}
	p.para(body)

	p.heading("Compensation")
	if o.Mode == engine.PackageSimple {
		p.amountRow("Monthly gross", o.Package.Monthly, false)
		p.amountRow("Annual cost to company", o.Package.AnnualCTC, true)
	} else {
		s := o.Structure
		p.amountRow("Basic", s.Basic, false)
		p.amountRow("HRA", s.HRA, false)
		for _, a := range s.Allowances {
			p.amountRow(a.Name, a.Amount, false)
		}
		if s.Incentives > 0 {
			p.amountRow("Incentives", s.Incentives, false)
		}
		p.amountRow("Gross (monthly)", s.Gross, true)

		d := s.Deductions
		for _, row := range []struct {
			label string
			m     engine.Money
		}{{"PF", d.PF}, {"ESI", d.ESI}, {"Professional / income tax", d.Tax}, {"Other deductions", d.Other}} {
			if row.m > 0 {
				p.amountRow(row.label, -row.m, false)
			}
		}
		p.amountRow("Net take-home (monthly)", s.Net, true)
		p.amountRow("Annual cost to company", s.AnnualCTC, true)
	}

	p.terms(o.Terms)

	p.pdf.Ln(10)
	p.font("", 10)
	p.line("For " + h.Name)
	p.pdf.Ln(12)
	p.line("Authorised signatory")
	return p.output(w)
}
