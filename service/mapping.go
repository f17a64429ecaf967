package service

import (
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"

	"gorm.io/datatypes"
)

func snapshot(p engine.Party) models.PartySnapshot {
	return models.PartySnapshot{
		CustomerName:   p.Name,
		CustomerType:   p.CustomerType,
		BillingAddress: p.BillingAddress,
		State:          p.State,
		Pincode:        p.Pincode,
		GSTIN:          p.GSTIN,
	}
}

func partyOf(s models.PartySnapshot) engine.Party {
	return engine.Party{
		Name:           s.CustomerName,
		CustomerType:   s.CustomerType,
		BillingAddress: s.BillingAddress,
		State:          s.State,
		Pincode:        s.Pincode,
		GSTIN:          s.GSTIN,
	}
}

func figures(d engine.Document) models.DocumentFigures {
	t := d.Totals
	return models.DocumentFigures{
		TaxMode:    d.Tax.Mode,
		TaxRate:    d.Tax.RatePercent,
		Discount:   t.Discount,
		Subtotal:   t.Subtotal,
		TaxAmount:  t.TaxAmount,
		CGST:       t.Tax.CGST(),
		SGST:       t.Tax.SGST(),
		GrandTotal: t.GrandTotal,
	}
}

// lineFields pairs each computed line with the catalog item it came from.
// catalogIDs may be shorter than items.
func lineFields(items []engine.LineItem, catalogIDs []*uint) []models.LineFields {
	out := make([]models.LineFields, len(items))
	for i, it := range items {
		var cid *uint
		if i < len(catalogIDs) {
			cid = catalogIDs[i]
		}
		out[i] = models.LineFields{
			Position:      i,
			LineRef:       it.ID,
			CatalogItemID: cid,
			Description:   it.Description,
			Quantity:      it.Quantity,
			Rate:          it.Rate,
			PriceFloor:    it.Floor,
			PriceCeiling:  it.Ceiling,
			LineTotal:     it.LineTotal,
		}
	}
	return out
}

func lineItem(f models.LineFields) engine.LineItem {
	return engine.LineItem{
		ID:          f.LineRef,
		Description: f.Description,
		Quantity:    f.Quantity,
		Rate:        f.Rate,
		Floor:       f.PriceFloor,
		Ceiling:     f.PriceCeiling,
		LineTotal:   f.LineTotal,
	}
}

func date(t time.Time) datatypes.Date { return datatypes.Date(t) }

// ===== invoice =====

// fillInvoice writes every document-derived column of m from d.
func fillInvoice(m *models.Invoice, d engine.Document, catalogIDs []*uint) {
	det, _ := d.Details.(engine.InvoiceDetails)
	m.PartySnapshot = snapshot(d.Party)
	m.IssueDate = date(d.IssueDate)
	m.DueDate = date(det.DueDate)
	m.Status = d.Status
	m.Terms = d.Terms
	m.DocumentFigures = figures(d)
	m.PaidAmount = d.Totals.PaidAmount
	m.Balance = d.Totals.Balance

	lines := lineFields(d.Items, catalogIDs)
	m.Items = make([]models.InvoiceItem, len(lines))
	for i, l := range lines {
		m.Items[i] = models.InvoiceItem{InvoiceID: m.ID, LineFields: l}
	}
}

func invoiceBase(m models.Invoice) engine.Document {
	items := make([]engine.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = lineItem(it.LineFields)
	}
	return engine.Document{
		Number:    m.Number,
		IssueDate: time.Time(m.IssueDate),
		Party:     partyOf(m.PartySnapshot),
		Items:     items,
		Tax:       engine.TaxConfig{Mode: m.TaxMode, RatePercent: m.TaxRate},
		Discount:  m.Discount,
		Terms:     m.Terms,
		Status:    m.Status,
		Details: engine.InvoiceDetails{
			DueDate:    time.Time(m.DueDate),
			PaidAmount: m.PaidAmount,
		},
	}
}

// InvoiceDocument rebuilds the computed record of a stored invoice, ready for
// further changes.
func InvoiceDocument(m models.Invoice) engine.Document {
	return engine.Recompute(invoiceBase(m))
}

// StoredInvoice is the invoice exactly as committed: line totals and figures
// come from the stored columns and are not recomputed.
func StoredInvoice(m models.Invoice) engine.Document {
	d := invoiceBase(m)
	d.Totals = storedTotals(m.DocumentFigures, m.PaidAmount, m.Balance)
	return d
}

// storedTotals assembles the committed figures into a Totals record.
func storedTotals(f models.DocumentFigures, paid, balance engine.Money) engine.Totals {
	return engine.Totals{
		Subtotal:   f.Subtotal,
		Tax:        engine.TaxBreakdownOf(f.TaxMode, f.TaxRate, f.TaxAmount, f.CGST, f.SGST),
		TaxAmount:  f.TaxAmount,
		Discount:   f.Discount,
		GrandTotal: f.GrandTotal,
		PaidAmount: paid,
		Balance:    balance,
	}
}

func invoiceCatalogIDs(items []models.InvoiceItem) []*uint {
	ids := make([]*uint, len(items))
	for i, it := range items {
		ids[i] = it.CatalogItemID
	}
	return ids
}

// ===== quotation =====

func fillQuotation(m *models.Quotation, d engine.Document, catalogIDs []*uint) {
	det, _ := d.Details.(engine.QuotationDetails)
	m.PartySnapshot = snapshot(d.Party)
	m.IssueDate = date(d.IssueDate)
	m.ValidUntil = date(det.ValidUntil)
	m.Status = d.Status
	m.Terms = d.Terms
	m.DocumentFigures = figures(d)

	lines := lineFields(d.Items, catalogIDs)
	m.Items = make([]models.QuotationItem, len(lines))
	for i, l := range lines {
		m.Items[i] = models.QuotationItem{QuotationID: m.ID, LineFields: l}
	}
}

func quotationBase(m models.Quotation) engine.Document {
	items := make([]engine.LineItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = lineItem(it.LineFields)
	}
	return engine.Document{
		Number:    m.Number,
		IssueDate: time.Time(m.IssueDate),
		Party:     partyOf(m.PartySnapshot),
		Items:     items,
		Tax:       engine.TaxConfig{Mode: m.TaxMode, RatePercent: m.TaxRate},
		Discount:  m.Discount,
		Terms:     m.Terms,
		Status:    m.Status,
		Details:   engine.QuotationDetails{ValidUntil: time.Time(m.ValidUntil)},
	}
}

// QuotationDocument rebuilds the computed record of a stored quotation.
func QuotationDocument(m models.Quotation) engine.Document {
	return engine.Recompute(quotationBase(m))
}

// StoredQuotation is the quotation exactly as committed. A quotation has
// nothing paid, so the balance is the grand total.
func StoredQuotation(m models.Quotation) engine.Document {
	d := quotationBase(m)
	d.Totals = storedTotals(m.DocumentFigures, 0, m.GrandTotal)
	return d
}

func quotationCatalogIDs(items []models.QuotationItem) []*uint {
	ids := make([]*uint, len(items))
	for i, it := range items {
		ids[i] = it.CatalogItemID
	}
	return ids
}

// ===== offer =====

func fillOffer(m *models.OfferLetter, o engine.Offer) {
	s := o.Structure
	m.CandidateName = o.CandidateName
	m.Designation = o.Designation
	m.Department = o.Department
	m.JoiningDate = date(o.JoiningDate)
	m.Mode = o.Mode
	m.Basic = s.Basic
	m.HRA = s.HRA
	m.Incentives = s.Incentives
	m.PF = s.Deductions.PF
	m.ESI = s.Deductions.ESI
	m.TaxDeduction = s.Deductions.Tax
	m.OtherDeduction = s.Deductions.Other
	m.Gross = s.Gross
	m.Net = s.Net
	m.StructureCTC = s.AnnualCTC
	m.PackageMonthly = o.Package.Monthly
	m.PackageCTC = o.Package.AnnualCTC
	m.Terms = o.Terms

	m.Allowances = make([]models.OfferAllowance, len(s.Allowances))
	for i, a := range s.Allowances {
		m.Allowances[i] = models.OfferAllowance{OfferLetterID: m.ID, Position: i, Name: a.Name, Amount: a.Amount}
	}
}

func offerBase(m models.OfferLetter) engine.Offer {
	var allowances []engine.Allowance
	for _, a := range m.Allowances {
		allowances = append(allowances, engine.Allowance{Name: a.Name, Amount: a.Amount})
	}
	mode := m.Mode
	if mode == "" {
		mode = engine.PackageStructure
	}
	return engine.Offer{
		CandidateName: m.CandidateName,
		Designation:   m.Designation,
		Department:    m.Department,
		JoiningDate:   time.Time(m.JoiningDate),
		Mode:          mode,
		Structure: engine.SalaryStructure{
			Basic:      m.Basic,
			HRA:        m.HRA,
			Allowances: allowances,
			Incentives: m.Incentives,
			Deductions: engine.Deductions{
				PF:    m.PF,
				ESI:   m.ESI,
				Tax:   m.TaxDeduction,
				Other: m.OtherDeduction,
			},
		},
		Package: engine.SimplePackage{Monthly: m.PackageMonthly, AnnualCTC: m.PackageCTC},
		Terms:   m.Terms,
	}
}

// OfferFromModel rebuilds the computed offer of a stored letter.
func OfferFromModel(m models.OfferLetter) engine.Offer {
	return engine.RecomputeOffer(offerBase(m))
}

// StoredOffer is the letter exactly as committed, with gross, net and CTC
// read from their columns.
func StoredOffer(m models.OfferLetter) engine.Offer {
	o := offerBase(m)
	o.Structure.Gross = m.Gross
	o.Structure.Net = m.Net
	o.Structure.AnnualCTC = m.StructureCTC
	return o
}
