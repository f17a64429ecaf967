package service

import (
	"strings"
	"time"

	"go-bizops-dashboard/engine"
)

const dateLayout = "2006-01-02"

// LineInput is one line as submitted. Amount fields are raw form values.
type LineInput struct {
	ID            string     `json:"id"`
	CatalogItemID *uint      `json:"catalog_item_id"`
	Description   string     `json:"description"`
	Quantity      engine.Raw `json:"quantity"`
	Rate          engine.Raw `json:"rate"`
}

// ClientTotals are the figures the client displayed. Only the ones sent are
// compared.
type ClientTotals struct {
	Subtotal   *engine.Money `json:"subtotal"`
	TaxAmount  *engine.Money `json:"tax_amount"`
	Discount   *engine.Money `json:"discount"`
	GrandTotal *engine.Money `json:"grand_total"`
	PaidAmount *engine.Money `json:"paid_amount"`
	Balance    *engine.Money `json:"balance"`
}

// Matches reports whether every figure the client sent equals the server's.
func (c *ClientTotals) Matches(t engine.Totals) bool {
	if c == nil {
		return true
	}
	pairs := []struct {
		got  *engine.Money
		want engine.Money
	}{
		{c.Subtotal, t.Subtotal},
		{c.TaxAmount, t.TaxAmount},
		{c.Discount, t.Discount},
		{c.GrandTotal, t.GrandTotal},
		{c.PaidAmount, t.PaidAmount},
		{c.Balance, t.Balance},
	}
	for _, p := range pairs {
		if p.got != nil && *p.got != p.want {
			return false
		}
	}
	return true
}

// DocumentInput is the create/update payload for invoices and quotations.
// Derived figures are never read from it; Totals is only compared.
type DocumentInput struct {
	BusinessID      *uint         `json:"business_id"`
	CustomerID      *uint         `json:"customer_id"`
	Party           *engine.Party `json:"party"`
	IssueDate       string        `json:"issue_date"`
	DueDate         string        `json:"due_date"`
	ValidUntil      string        `json:"valid_until"`
	TaxMode         string        `json:"tax_mode"`
	TaxRate         engine.Raw    `json:"tax_rate"`
	Discount        engine.Raw    `json:"discount"`
	PaidAmount      engine.Raw    `json:"paid_amount"`
	Terms           string        `json:"terms"`
	TermsTemplateID *uint         `json:"terms_template_id"`
	Status          string        `json:"status"`
	Items           []LineInput   `json:"items"`
	Totals          *ClientTotals `json:"totals"`
}

type PaymentInput struct {
	Amount     engine.Raw `json:"amount"`
	Method     string     `json:"method"`
	Reference  string     `json:"reference"`
	ReceivedAt string     `json:"received_at"`
	Note       string     `json:"note"`
}

type AllowanceInput struct {
	Name   string     `json:"name"`
	Amount engine.Raw `json:"amount"`
}

type DeductionsInput struct {
	PF    engine.Raw `json:"pf"`
	ESI   engine.Raw `json:"esi"`
	Tax   engine.Raw `json:"tax"`
	Other engine.Raw `json:"other"`
}

// OfferInput is the create/update payload for offer letters. In SIMPLE mode
// Edited says which of Monthly / AnnualCTC the user typed last ("monthly" or
// "annual"); the other is derived from it.
type OfferInput struct {
	BusinessID      *uint            `json:"business_id"`
	CandidateName   string           `json:"candidate_name"`
	Designation     string           `json:"designation"`
	Department      string           `json:"department"`
	JoiningDate     string           `json:"joining_date"`
	Mode            string           `json:"mode"`
	Basic           engine.Raw       `json:"basic"`
	HRA             engine.Raw       `json:"hra"`
	Incentives      engine.Raw       `json:"incentives"`
	Allowances      []AllowanceInput `json:"allowances"`
	Deductions      DeductionsInput  `json:"deductions"`
	Monthly         engine.Raw       `json:"monthly"`
	AnnualCTC       engine.Raw       `json:"annual_ctc"`
	Edited          string           `json:"edited"`
	Terms           string           `json:"terms"`
	TermsTemplateID *uint            `json:"terms_template_id"`
}

// parseDate accepts YYYY-MM-DD; empty gives the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

func dateOr(s string, def time.Time) (time.Time, error) {
	t, err := parseDate(s)
	if err != nil || !t.IsZero() {
		return t, err
	}
	return def, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
