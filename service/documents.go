package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"
	"go-bizops-dashboard/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxNumberRetries = 3

type Options struct {
	DefaultDueDays   int
	DefaultValidDays int
	Now              func() time.Time
}

func DefaultOptions() Options {
	return Options{DefaultDueDays: 30, DefaultValidDays: 15}
}

// ListFilter is shared by the invoice, quotation and offer listings.
type ListFilter struct {
	Status     string
	CustomerID *uint
	Query      string // number or party name
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
	SortBy     string // "issue_date", "-issue_date", "grand_total", "-grand_total", "number", "-number"
}

// DocumentService persists invoices, quotations and offer letters. Every
// write recomputes through the engine and passes its validation first.
type DocumentService interface {
	Preview(ctx context.Context, kind engine.Kind, in DocumentInput) (engine.Document, []string, error)

	CreateInvoice(ctx context.Context, in DocumentInput, actorID uint) (models.Invoice, engine.Document, error)
	UpdateInvoice(ctx context.Context, id uint, in DocumentInput) (models.Invoice, engine.Document, error)
	GetInvoice(ctx context.Context, id uint) (models.Invoice, error)
	ListInvoices(ctx context.Context, f ListFilter) ([]models.Invoice, int64, error)
	ChangeInvoiceStatus(ctx context.Context, id uint, target string) (models.Invoice, error)
	RecordPayment(ctx context.Context, id uint, in PaymentInput, actorID uint) (models.Invoice, error)
	DeleteInvoice(ctx context.Context, id uint) error

	CreateQuotation(ctx context.Context, in DocumentInput, actorID uint) (models.Quotation, engine.Document, error)
	UpdateQuotation(ctx context.Context, id uint, in DocumentInput) (models.Quotation, engine.Document, error)
	GetQuotation(ctx context.Context, id uint) (models.Quotation, error)
	ListQuotations(ctx context.Context, f ListFilter) ([]models.Quotation, int64, error)
	ChangeQuotationStatus(ctx context.Context, id uint, target string) (models.Quotation, error)
	ConvertQuotation(ctx context.Context, id uint, actorID uint) (models.Invoice, error)

	PreviewOffer(ctx context.Context, in OfferInput) (engine.Offer, []string, error)
	CreateOffer(ctx context.Context, in OfferInput, actorID uint) (models.OfferLetter, error)
	UpdateOffer(ctx context.Context, id uint, in OfferInput) (models.OfferLetter, error)
	GetOffer(ctx context.Context, id uint) (models.OfferLetter, error)
	ListOffers(ctx context.Context, f ListFilter) ([]models.OfferLetter, int64, error)
}

type documentService struct {
	db   *gorm.DB
	opts Options
}

func NewDocumentService(db *gorm.DB, opts Options) DocumentService {
	return &documentService{db: db, opts: opts}
}

func lockUpdate() clause.Locking { return clause.Locking{Strength: "UPDATE"} }

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }

// withNumber runs fn in a transaction, retrying when a concurrent writer
// took the same document number.
func (s *documentService) withNumber(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for i := 0; i < maxNumberRetries; i++ {
		lastErr = s.db.WithContext(ctx).Transaction(fn)
		if lastErr == nil || !errors.Is(lastErr, errUniqueViolation) {
			return lastErr
		}
	}
	return lastErr
}

// nextSeq locks the highest sequence row of model's table.
func nextSeq(tx *gorm.DB, model any) (uint, error) {
	var last uint
	err := tx.Model(model).
		Select("number_seq").
		Order("number_seq DESC").
		Clauses(lockUpdate()).
		Limit(1).
		Scan(&last).Error
	return last + 1, err
}

func (s *documentService) Preview(ctx context.Context, kind engine.Kind, in DocumentInput) (engine.Document, []string, error) {
	d, err := s.build(s.db.WithContext(ctx), kind, in, buildOpts{})
	if err != nil {
		return engine.Document{}, nil, err
	}
	return d.doc, engine.Validate(d.doc), nil
}

// ===== invoices =====

func (s *documentService) CreateInvoice(ctx context.Context, in DocumentInput, actorID uint) (models.Invoice, engine.Document, error) {
	var (
		out models.Invoice
		doc engine.Document
	)
	err := s.withNumber(ctx, func(tx *gorm.DB) error {
		d, err := s.build(tx, engine.KindInvoice, in, buildOpts{})
		if err != nil {
			return err
		}
		if err := gate(d.doc, in.Totals); err != nil {
			return err
		}

		seq, err := nextSeq(tx, &models.Invoice{})
		if err != nil {
			return err
		}
		d.doc.Number = utils.DocumentNumber(utils.PrefixInvoice, seq, s.now())

		m := models.Invoice{
			Number:      d.doc.Number,
			NumberSeq:   seq,
			BusinessID:  d.businessID,
			CustomerID:  d.customerID,
			CreatedByID: actorID,
		}
		fillInvoice(&m, d.doc, d.catalogIDs)
		if err := tx.Create(&m).Error; err != nil {
			return wrapCreate(err)
		}

		// An amount already received when the invoice is raised becomes its
		// first payment row.
		if paid := d.doc.PaidAmount(); paid > 0 {
			p := models.InvoicePayment{
				InvoiceID:    m.ID,
				Amount:       paid,
				Method:       "OPENING",
				ReceivedAt:   s.now(),
				ReceivedByID: actorID,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			m.Payments = []models.InvoicePayment{p}
		}
		out, doc = m, d.doc
		return nil
	})
	return out, doc, err
}

func (s *documentService) UpdateInvoice(ctx context.Context, id uint, in DocumentInput) (models.Invoice, engine.Document, error) {
	var (
		m   models.Invoice
		doc engine.Document
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		paid, err := paidSum(tx, m.ID)
		if err != nil {
			return err
		}

		d, err := s.build(tx, engine.KindInvoice, in, buildOpts{paid: &paid, status: m.Status, number: m.Number})
		if err != nil {
			return err
		}
		if err := gate(d.doc, in.Totals); err != nil {
			return err
		}

		m.BusinessID = d.businessID
		m.CustomerID = d.customerID
		fillInvoice(&m, d.doc, d.catalogIDs)
		if err := replaceInvoiceItems(tx, &m); err != nil {
			return err
		}
		doc = d.doc
		return nil
	})
	return m, doc, err
}

func replaceInvoiceItems(tx *gorm.DB, m *models.Invoice) error {
	if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
		return err
	}
	if err := tx.Where("invoice_id = ?", m.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	if len(m.Items) == 0 {
		return nil
	}
	return tx.Create(&m.Items).Error
}

func paidSum(tx *gorm.DB, invoiceID uint) (engine.Money, error) {
	var sum int64
	err := tx.Model(&models.InvoicePayment{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return engine.Money(sum), err
}

func (s *documentService) GetInvoice(ctx context.Context, id uint) (models.Invoice, error) {
	var m models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("received_at ASC, id ASC") }).
		First(&m, id).Error
	return m, notFound(err, ErrDocumentNotFound)
}

func (s *documentService) ListInvoices(ctx context.Context, f ListFilter) ([]models.Invoice, int64, error) {
	q := listQuery(s.db.WithContext(ctx).Model(&models.Invoice{}), f, "customer_name", "issue_date")
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Invoice
	err := paged(q, f).Preload("Items", byPosition).Find(&rows).Error
	return rows, total, err
}

func (s *documentService) ChangeInvoiceStatus(ctx context.Context, id uint, target string) (models.Invoice, error) {
	var m models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).Preload("Items", byPosition).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		st, err := engine.ParseStatus(engine.KindInvoice, target)
		if err != nil {
			return err
		}
		doc, err := engine.Apply(InvoiceDocument(m), engine.SetStatus{Target: st})
		if err != nil {
			return err
		}
		m.Status = doc.Status
		return tx.Model(&m).Update("status", m.Status).Error
	})
	return m, err
}

// RecordPayment appends a receipt and re-derives paid amount, balance and
// (unless the invoice is in a manual state) status.
func (s *documentService) RecordPayment(ctx context.Context, id uint, in PaymentInput, actorID uint) (models.Invoice, error) {
	var m models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).Preload("Items", byPosition).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		if m.Status == engine.InvoiceCancelled {
			return ErrPaymentNotAllowed
		}

		amount := engine.ParseMoney(string(in.Amount))
		if amount <= 0 || !amount.InRange() {
			return &ValidationError{Fields: []string{"amount"}}
		}
		receivedAt, err := dateOr(in.ReceivedAt, s.now())
		if err != nil {
			return err
		}

		paid, err := paidSum(tx, m.ID)
		if err != nil {
			return err
		}
		doc, err := engine.Apply(InvoiceDocument(m), engine.SetPaidAmount{Raw: (paid + amount).String()})
		if err != nil {
			return err
		}
		if doc.Totals.Balance < 0 {
			return ErrOverpayment
		}

		method := strings.ToUpper(strings.TrimSpace(in.Method))
		if method == "" {
			method = "CASH"
		}
		p := models.InvoicePayment{
			InvoiceID:    m.ID,
			Amount:       amount,
			Method:       method,
			Reference:    in.Reference,
			ReceivedAt:   receivedAt,
			ReceivedByID: actorID,
			Note:         in.Note,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		m.PaidAmount = doc.Totals.PaidAmount
		m.Balance = doc.Totals.Balance
		m.Status = doc.Status
		return tx.Model(&m).Updates(map[string]any{
			"paid_amount": m.PaidAmount,
			"balance":     m.Balance,
			"status":      m.Status,
		}).Error
	})
	return m, err
}

func (s *documentService) DeleteInvoice(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Invoice
		if err := tx.Clauses(lockUpdate()).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		if m.Status != engine.InvoiceDraft && m.Status != engine.InvoiceCancelled {
			return ErrNotDeletable
		}
		if err := tx.Where("invoice_id = ?", m.ID).Delete(&models.InvoicePayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", m.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Quotation{}).Where("converted_invoice_id = ?", m.ID).
			Update("converted_invoice_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
}

// ===== quotations =====

func (s *documentService) CreateQuotation(ctx context.Context, in DocumentInput, actorID uint) (models.Quotation, engine.Document, error) {
	var (
		out models.Quotation
		doc engine.Document
	)
	err := s.withNumber(ctx, func(tx *gorm.DB) error {
		d, err := s.build(tx, engine.KindQuotation, in, buildOpts{})
		if err != nil {
			return err
		}
		if err := gate(d.doc, in.Totals); err != nil {
			return err
		}

		seq, err := nextSeq(tx, &models.Quotation{})
		if err != nil {
			return err
		}
		d.doc.Number = utils.DocumentNumber(utils.PrefixQuotation, seq, s.now())

		m := models.Quotation{
			Number:      d.doc.Number,
			NumberSeq:   seq,
			BusinessID:  d.businessID,
			CustomerID:  d.customerID,
			CreatedByID: actorID,
		}
		fillQuotation(&m, d.doc, d.catalogIDs)
		if err := tx.Create(&m).Error; err != nil {
			return wrapCreate(err)
		}
		out, doc = m, d.doc
		return nil
	})
	return out, doc, err
}

func (s *documentService) UpdateQuotation(ctx context.Context, id uint, in DocumentInput) (models.Quotation, engine.Document, error) {
	var (
		m   models.Quotation
		doc engine.Document
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		if m.ConvertedInvoiceID != nil {
			return ErrAlreadyConverted
		}
		d, err := s.build(tx, engine.KindQuotation, in, buildOpts{status: m.Status, number: m.Number})
		if err != nil {
			return err
		}
		if err := gate(d.doc, in.Totals); err != nil {
			return err
		}

		m.BusinessID = d.businessID
		m.CustomerID = d.customerID
		fillQuotation(&m, d.doc, d.catalogIDs)
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", m.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		if len(m.Items) > 0 {
			if err := tx.Create(&m.Items).Error; err != nil {
				return err
			}
		}
		doc = d.doc
		return nil
	})
	return m, doc, err
}

func (s *documentService) GetQuotation(ctx context.Context, id uint) (models.Quotation, error) {
	var m models.Quotation
	err := s.db.WithContext(ctx).Preload("Items", byPosition).First(&m, id).Error
	return m, notFound(err, ErrDocumentNotFound)
}

func (s *documentService) ListQuotations(ctx context.Context, f ListFilter) ([]models.Quotation, int64, error) {
	q := listQuery(s.db.WithContext(ctx).Model(&models.Quotation{}), f, "customer_name", "issue_date")
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Quotation
	err := paged(q, f).Preload("Items", byPosition).Find(&rows).Error
	return rows, total, err
}

func (s *documentService) ChangeQuotationStatus(ctx context.Context, id uint, target string) (models.Quotation, error) {
	var m models.Quotation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		if m.ConvertedInvoiceID != nil {
			return ErrAlreadyConverted
		}
		st, err := engine.ParseStatus(engine.KindQuotation, target)
		if err != nil {
			return err
		}
		doc, err := engine.Apply(QuotationDocument(m), engine.SetStatus{Target: st})
		if err != nil {
			return err
		}
		m.Status = doc.Status
		return tx.Model(&m).Update("status", m.Status).Error
	})
	return m, err
}

// ConvertQuotation raises a new invoice from an approved quotation. A
// quotation converts at most once.
func (s *documentService) ConvertQuotation(ctx context.Context, id uint, actorID uint) (models.Invoice, error) {
	var inv models.Invoice
	err := s.withNumber(ctx, func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.Clauses(lockUpdate()).Preload("Items", byPosition).First(&q, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		if q.ConvertedInvoiceID != nil {
			return ErrAlreadyConverted
		}

		issued := truncateDay(s.now())
		doc, err := engine.ConvertToInvoice(QuotationDocument(q), issued, issued.AddDate(0, 0, s.opts.DefaultDueDays))
		if err != nil {
			return err
		}
		if err := gate(doc, nil); err != nil {
			return err
		}

		seq, err := nextSeq(tx, &models.Invoice{})
		if err != nil {
			return err
		}
		doc.Number = utils.DocumentNumber(utils.PrefixInvoice, seq, s.now())

		inv = models.Invoice{
			Number:      doc.Number,
			NumberSeq:   seq,
			BusinessID:  q.BusinessID,
			CustomerID:  q.CustomerID,
			QuotationID: &q.ID,
			CreatedByID: actorID,
		}
		fillInvoice(&inv, doc, quotationCatalogIDs(q.Items))
		if err := tx.Create(&inv).Error; err != nil {
			return wrapCreate(err)
		}
		return tx.Model(&q).Update("converted_invoice_id", inv.ID).Error
	})
	return inv, err
}

// ===== offer letters =====

func (s *documentService) PreviewOffer(ctx context.Context, in OfferInput) (engine.Offer, []string, error) {
	o, err := s.buildOffer(s.db.WithContext(ctx), in)
	if err != nil {
		return engine.Offer{}, nil, err
	}
	return o, engine.ValidateOffer(o), nil
}

func (s *documentService) CreateOffer(ctx context.Context, in OfferInput, actorID uint) (models.OfferLetter, error) {
	var out models.OfferLetter
	err := s.withNumber(ctx, func(tx *gorm.DB) error {
		o, err := s.buildOffer(tx, in)
		if err != nil {
			return err
		}
		if v := engine.ValidateOffer(o); len(v) > 0 {
			return &ValidationError{Fields: v}
		}
		seq, err := nextSeq(tx, &models.OfferLetter{})
		if err != nil {
			return err
		}
		m := models.OfferLetter{
			Number:      utils.DocumentNumber(utils.PrefixOffer, seq, s.now()),
			NumberSeq:   seq,
			BusinessID:  in.BusinessID,
			CreatedByID: actorID,
		}
		fillOffer(&m, o)
		if err := tx.Create(&m).Error; err != nil {
			return wrapCreate(err)
		}
		out = m
		return nil
	})
	return out, err
}

func (s *documentService) UpdateOffer(ctx context.Context, id uint, in OfferInput) (models.OfferLetter, error) {
	var m models.OfferLetter
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockUpdate()).First(&m, id).Error; err != nil {
			return notFound(err, ErrDocumentNotFound)
		}
		o, err := s.buildOffer(tx, in)
		if err != nil {
			return err
		}
		if v := engine.ValidateOffer(o); len(v) > 0 {
			return &ValidationError{Fields: v}
		}
		m.BusinessID = in.BusinessID
		fillOffer(&m, o)
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_letter_id = ?", m.ID).Delete(&models.OfferAllowance{}).Error; err != nil {
			return err
		}
		if len(m.Allowances) == 0 {
			return nil
		}
		return tx.Create(&m.Allowances).Error
	})
	return m, err
}

func (s *documentService) GetOffer(ctx context.Context, id uint) (models.OfferLetter, error) {
	var m models.OfferLetter
	err := s.db.WithContext(ctx).Preload("Allowances", byPosition).First(&m, id).Error
	return m, notFound(err, ErrDocumentNotFound)
}

func (s *documentService) ListOffers(ctx context.Context, f ListFilter) ([]models.OfferLetter, int64, error) {
	f.CustomerID = nil
	f.Status = ""
	q := listQuery(s.db.WithContext(ctx).Model(&models.OfferLetter{}), f, "candidate_name", "created_at")
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	switch strings.TrimPrefix(f.SortBy, "-") {
	case "number", "created_at":
	default:
		f.SortBy = "-created_at"
	}
	var rows []models.OfferLetter
	err := paged(q, f).Preload("Allowances", byPosition).Find(&rows).Error
	return rows, total, err
}

// ===== listing helpers =====

func listQuery(q *gorm.DB, f ListFilter, nameColumn, dateColumn string) *gorm.DB {
	if st := strings.ToUpper(strings.TrimSpace(f.Status)); st != "" {
		q = q.Where("status = ?", st)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(number) LIKE ? OR LOWER("+nameColumn+") LIKE ?", like, like)
	}
	if f.DateFrom != nil {
		q = q.Where(dateColumn+" >= ?", truncateDay(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where(dateColumn+" < ?", truncateDay(*f.DateTo).AddDate(0, 0, 1))
	}
	return q
}

var sortColumns = map[string]string{
	"issue_date":  "issue_date",
	"grand_total": "grand_total",
	"number":      "number_seq",
	"created_at":  "created_at",
}

func paged(q *gorm.DB, f ListFilter) *gorm.DB {
	page, size := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 50
	}

	key, dir := f.SortBy, "ASC"
	if strings.HasPrefix(key, "-") {
		key, dir = key[1:], "DESC"
	}
	if col, ok := sortColumns[key]; ok {
		q = q.Order(col + " " + dir)
	} else {
		q = q.Order("id DESC")
	}
	return q.Offset((page - 1) * size).Limit(size)
}
