package service

import (
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"

	"gorm.io/gorm"
)

// draft is a computed document plus the links that live outside the engine.
type draft struct {
	doc        engine.Document
	catalogIDs []*uint
	customerID *uint
	businessID *uint
}

type buildOpts struct {
	// paid replaces the payload's paid_amount (stored invoices take it from
	// their payment rows).
	paid *engine.Money
	// status is the state the edit starts from.
	status engine.Status
	number string
}

// build replays a payload through the reducer, the same path an interactive
// edit session takes, so the stored figures are exactly what the engine
// derives from the raw inputs.
func (s *documentService) build(tx *gorm.DB, kind engine.Kind, in DocumentInput, opts buildOpts) (draft, error) {
	out := draft{customerID: in.CustomerID, businessID: in.BusinessID}

	party, err := s.resolveParty(tx, in)
	if err != nil {
		return out, err
	}
	terms, err := s.resolveTerms(tx, in.Terms, in.TermsTemplateID)
	if err != nil {
		return out, err
	}
	if in.BusinessID != nil {
		if err := tx.Select("id").First(&models.Business{}, *in.BusinessID).Error; err != nil {
			return out, notFound(err, ErrBusinessNotFound)
		}
	}

	mode, err := engine.ParseTaxMode(in.TaxMode)
	if err != nil {
		return out, &ValidationError{Fields: []string{"tax_mode"}}
	}

	issue, err := dateOr(in.IssueDate, truncateDay(s.now()))
	if err != nil {
		return out, err
	}

	var base engine.Document
	switch kind {
	case engine.KindQuotation:
		valid, err := dateOr(in.ValidUntil, issue.AddDate(0, 0, s.opts.DefaultValidDays))
		if err != nil {
			return out, err
		}
		base = engine.NewQuotation()
		base.Details = engine.QuotationDetails{ValidUntil: valid}
	default:
		due, err := dateOr(in.DueDate, issue.AddDate(0, 0, s.opts.DefaultDueDays))
		if err != nil {
			return out, err
		}
		base = engine.NewInvoice()
		base.Details = engine.InvoiceDetails{DueDate: due}
	}
	base.Number = opts.number
	base.IssueDate = issue
	if opts.status != "" {
		base.Status = opts.status
	}

	changes := []engine.Change{
		engine.SetParty{Party: party},
		engine.SetTerms{Text: terms},
		engine.SetTaxMode{Mode: mode},
		engine.SetTaxRate{Raw: string(in.TaxRate)},
		engine.SetDiscount{Raw: string(in.Discount)},
	}
	if kind == engine.KindInvoice {
		paid := string(in.PaidAmount)
		if opts.paid != nil {
			paid = opts.paid.String()
		}
		changes = append(changes, engine.SetPaidAmount{Raw: paid})
	}

	out.catalogIDs = make([]*uint, len(in.Items))
	for i, li := range in.Items {
		lineChanges, err := s.lineChanges(tx, i, li)
		if err != nil {
			return out, err
		}
		changes = append(changes, lineChanges...)
		out.catalogIDs[i] = li.CatalogItemID
	}

	if in.Status != "" {
		st, err := engine.ParseStatus(kind, in.Status)
		if err != nil {
			return out, &ValidationError{Fields: []string{"status"}}
		}
		changes = append(changes, engine.SetStatus{Target: st})
	}

	out.doc, err = engine.ApplyAll(base, changes...)
	return out, err
}

func (s *documentService) lineChanges(tx *gorm.DB, i int, li LineInput) ([]engine.Change, error) {
	if li.CatalogItemID == nil {
		return []engine.Change{
			engine.AddItem{Item: engine.LineItem{ID: li.ID, Description: li.Description}},
			engine.SetQuantity{Index: i, Raw: string(li.Quantity)},
			engine.SetRate{Index: i, Raw: string(li.Rate)},
		}, nil
	}

	var ci models.CatalogItem
	if err := tx.First(&ci, *li.CatalogItemID).Error; err != nil {
		return nil, notFound(err, ErrCatalogNotFound)
	}
	// A catalog line starts at quantity 1 and the floor price; anything the
	// user typed is applied on top and clamped to the catalog range.
	ch := []engine.Change{engine.AddCatalogItem{ID: li.ID, Entry: ci.Entry()}}
	if li.Description != "" {
		ch = append(ch, engine.SetDescription{Index: i, Text: li.Description})
	}
	if li.Quantity != "" {
		ch = append(ch, engine.SetQuantity{Index: i, Raw: string(li.Quantity)})
	}
	if li.Rate != "" {
		ch = append(ch, engine.SetRate{Index: i, Raw: string(li.Rate)})
	}
	return ch, nil
}

// resolveParty prefers an explicit party block over the customer record.
func (s *documentService) resolveParty(tx *gorm.DB, in DocumentInput) (engine.Party, error) {
	var p engine.Party
	if in.CustomerID != nil {
		var cu models.Customer
		if err := tx.First(&cu, *in.CustomerID).Error; err != nil {
			return p, notFound(err, ErrCustomerNotFound)
		}
		p = cu.Party()
	}
	if in.Party != nil {
		p = *in.Party
	}
	if p.CustomerType == "" {
		p.CustomerType = engine.CustomerIndividual
	}
	return p, nil
}

// resolveTerms returns the typed text, or the template body when no text was
// given.
func (s *documentService) resolveTerms(tx *gorm.DB, text string, templateID *uint) (string, error) {
	if text != "" || templateID == nil {
		return text, nil
	}
	var tt models.TermsTemplate
	if err := tx.First(&tt, *templateID).Error; err != nil {
		return "", notFound(err, ErrTermsNotFound)
	}
	return tt.Body, nil
}

// gate is the server-side commit check: the engine's validation first, then
// the client's figures against the recomputed ones.
func gate(d engine.Document, client *ClientTotals) error {
	if v := engine.Validate(d); len(v) > 0 {
		return &ValidationError{Fields: v}
	}
	if !client.Matches(d.Totals) {
		return &MismatchError{Computed: d}
	}
	return nil
}

// ===== offers =====

func (s *documentService) buildOffer(tx *gorm.DB, in OfferInput) (engine.Offer, error) {
	terms, err := s.resolveTerms(tx, in.Terms, in.TermsTemplateID)
	if err != nil {
		return engine.Offer{}, err
	}
	joining, err := parseDate(in.JoiningDate)
	if err != nil {
		return engine.Offer{}, err
	}
	if in.BusinessID != nil {
		if err := tx.Select("id").First(&models.Business{}, *in.BusinessID).Error; err != nil {
			return engine.Offer{}, notFound(err, ErrBusinessNotFound)
		}
	}

	mode := engine.PackageMode(in.Mode)
	if mode == "" {
		mode = engine.PackageStructure
	}
	changes := []engine.OfferChange{
		engine.SetCandidate{Name: in.CandidateName, Designation: in.Designation, Department: in.Department, JoiningDate: joining},
		engine.SetOfferTerms{Text: terms},
		engine.SetPackageMode{Mode: mode},
		engine.SetBasic{Raw: string(in.Basic)},
		engine.SetHRA{Raw: string(in.HRA)},
		engine.SetIncentives{Raw: string(in.Incentives)},
		engine.SetDeduction{Name: "pf", Raw: string(in.Deductions.PF)},
		engine.SetDeduction{Name: "esi", Raw: string(in.Deductions.ESI)},
		engine.SetDeduction{Name: "tax", Raw: string(in.Deductions.Tax)},
		engine.SetDeduction{Name: "other", Raw: string(in.Deductions.Other)},
	}
	for _, a := range in.Allowances {
		changes = append(changes, engine.AddAllowance{Name: a.Name, Raw: string(a.Amount)})
	}
	if in.Edited == "annual" || (in.Monthly == "" && in.AnnualCTC != "") {
		changes = append(changes, engine.SetAnnualCTC{Raw: string(in.AnnualCTC)})
	} else {
		changes = append(changes, engine.SetMonthly{Raw: string(in.Monthly)})
	}

	o := engine.NewOffer()
	for _, ch := range changes {
		if o, err = engine.ApplyOffer(o, ch); err != nil {
			if _, bad := ch.(engine.SetPackageMode); bad {
				return o, &ValidationError{Fields: []string{"mode"}}
			}
			return o, err
		}
	}
	return o, nil
}

func (s *documentService) now() time.Time {
	if s.opts.Now != nil {
		return s.opts.Now()
	}
	return time.Now()
}
