package service

import (
	"context"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"

	"gorm.io/gorm"
)

// ===== receivables report =====

type ReceivablesFilter struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	CustomerID *uint
	Page       int // 1-based, customer breakdown only
	PageSize   int
	SortBy     string // "outstanding", "-outstanding", "name", "-name"
	AsOf       time.Time
}

type ReceivablesSummary struct {
	Count       int64        `json:"count"`
	GrandTotal  engine.Money `json:"grand_total"`
	Paid        engine.Money `json:"paid"`
	Outstanding engine.Money `json:"outstanding"`
}

type StatusRow struct {
	Status engine.Status `json:"status"`
	ReceivablesSummary
}

type CustomerRow struct {
	CustomerID   *uint  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ReceivablesSummary
}

// AgingRow buckets the outstanding balance of open invoices by days past due.
type AgingRow struct {
	Bucket      string       `json:"bucket"`
	Count       int64        `json:"count"`
	Outstanding engine.Money `json:"outstanding"`
}

type ReceivablesReport struct {
	Summary    ReceivablesSummary `json:"summary"`
	ByStatus   []StatusRow        `json:"by_status"`
	ByCustomer []CustomerRow      `json:"by_customer"`
	Aging      []AgingRow         `json:"aging"`
}

// scan target; SUM comes back as int64 or numeric depending on the driver.
type sumRow struct {
	Label       string
	CustomerID  *uint
	Count       int64
	GrandTotal  int64
	Paid        int64
	Outstanding int64
}

func (r sumRow) summary() ReceivablesSummary {
	return ReceivablesSummary{
		Count:       r.Count,
		GrandTotal:  engine.Money(r.GrandTotal),
		Paid:        engine.Money(r.Paid),
		Outstanding: engine.Money(r.Outstanding),
	}
}

// ===== Service =====

type Service interface {
	// Receivables summarises invoiced, paid and outstanding amounts. Cancelled
	// invoices are left out.
	Receivables(ctx context.Context, f ReceivablesFilter) (ReceivablesReport, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

const sumColumns = `
	COUNT(*) AS count,
	COALESCE(SUM(grand_total), 0) AS grand_total,
	COALESCE(SUM(paid_amount), 0) AS paid,
	COALESCE(SUM(balance), 0) AS outstanding`

func (s *service) base(ctx context.Context, f ReceivablesFilter) *gorm.DB {
	q := s.db.WithContext(ctx).
		Table("invoices").
		Where("status <> ?", engine.InvoiceCancelled)
	if f.DateFrom != nil {
		q = q.Where("issue_date >= ?", truncateDay(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("issue_date < ?", truncateDay(*f.DateTo).AddDate(0, 0, 1))
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	return q
}

func (s *service) Receivables(ctx context.Context, f ReceivablesFilter) (ReceivablesReport, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 500 {
		f.PageSize = 50
	}
	if f.AsOf.IsZero() {
		f.AsOf = time.Now()
	}

	var rep ReceivablesReport

	// Summary
	var total sumRow
	if err := s.base(ctx, f).Select(sumColumns).Scan(&total).Error; err != nil {
		return rep, err
	}
	rep.Summary = total.summary()

	// Per status
	var statusRows []sumRow
	if err := s.base(ctx, f).
		Select("status AS label," + sumColumns).
		Group("status").
		Order("status ASC").
		Scan(&statusRows).Error; err != nil {
		return rep, err
	}
	for _, r := range statusRows {
		rep.ByStatus = append(rep.ByStatus, StatusRow{Status: engine.Status(r.Label), ReceivablesSummary: r.summary()})
	}

	// Per customer
	q := s.base(ctx, f).
		Select("customer_id, customer_name AS label," + sumColumns).
		Group("customer_id, customer_name")
	switch f.SortBy {
	case "name":
		q = q.Order("customer_name ASC")
	case "-name":
		q = q.Order("customer_name DESC")
	case "outstanding":
		q = q.Order("outstanding ASC")
	default:
		q = q.Order("outstanding DESC")
	}
	var customerRows []sumRow
	if err := q.Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Scan(&customerRows).Error; err != nil {
		return rep, err
	}
	for _, r := range customerRows {
		rep.ByCustomer = append(rep.ByCustomer, CustomerRow{
			CustomerID:         r.CustomerID,
			CustomerName:       r.Label,
			ReceivablesSummary: r.summary(),
		})
	}

	aging, err := s.aging(ctx, f)
	if err != nil {
		return rep, err
	}
	rep.Aging = aging
	return rep, nil
}

var agingBuckets = []struct {
	label   string
	maxDays int // inclusive; -1 means open ended
}{
	{"current", 0},
	{"1-30", 30},
	{"31-60", 60},
	{"61-90", 90},
	{"90+", -1},
}

// aging only looks at invoices on payment tracking with money still owed.
func (s *service) aging(ctx context.Context, f ReceivablesFilter) ([]AgingRow, error) {
	var open []models.Invoice
	if err := s.base(ctx, f).
		Select("id, due_date, balance").
		Where("status IN ?", []engine.Status{engine.InvoiceUnpaid, engine.InvoicePartial}).
		Where("balance > 0").
		Find(&open).Error; err != nil {
		return nil, err
	}

	rows := make([]AgingRow, len(agingBuckets))
	for i, b := range agingBuckets {
		rows[i].Bucket = b.label
	}
	asOf := truncateDay(f.AsOf)
	for _, inv := range open {
		days := int(asOf.Sub(truncateDay(time.Time(inv.DueDate))).Hours() / 24)
		i := bucketFor(days)
		rows[i].Count++
		rows[i].Outstanding += inv.Balance
	}
	return rows, nil
}

func bucketFor(daysPastDue int) int {
	for i, b := range agingBuckets {
		if b.maxDays >= 0 && daysPastDue <= b.maxDays {
			return i
		}
	}
	return len(agingBuckets) - 1
}
