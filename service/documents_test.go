package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go-bizops-dashboard/engine"
	"go-bizops-dashboard/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// one connection, otherwise every new connection sees an empty :memory: db
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (DocumentService, *gorm.DB) {
	db := newTestDB(t)
	opts := DefaultOptions()
	opts.Now = func() time.Time { return testNow }
	return NewDocumentService(db, opts), db
}

func seedCustomer(t *testing.T, db *gorm.DB, c models.Customer) *uint {
	t.Helper()
	if err := db.Create(&c).Error; err != nil {
		t.Fatal(err)
	}
	return &c.ID
}

func acme(t *testing.T, db *gorm.DB) *uint {
	return seedCustomer(t, db, models.Customer{
		Name:           "Acme Traders",
		CustomerType:   engine.CustomerBusiness,
		BillingAddress: "12 MG Road, Bengaluru",
		State:          "Karnataka",
		Pincode:        "560001",
		GSTIN:          "29ABCDE1234F1Z5",
	})
}

// widgetInvoice is 2 x 500 at 18% GST with 100 off.
func widgetInvoice(customerID *uint, paid string) DocumentInput {
	return DocumentInput{
		CustomerID: customerID,
		TaxMode:    "GST",
		TaxRate:    "18",
		Discount:   "100",
		PaidAmount: engine.Raw(paid),
		Items: []LineInput{
			{ID: "l1", Description: "Widget", Quantity: "2", Rate: "500"},
		},
	}
}

func money(v int64) *engine.Money {
	m := engine.FromMajor(v)
	return &m
}

func TestCreateInvoice(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inv, doc, err := svc.CreateInvoice(ctx, widgetInvoice(acme(t, db), "1080"), 7)
	if err != nil {
		t.Fatalf("CreateInvoice: %v", err)
	}

	if inv.Number != "INV-2026-000001" {
		t.Errorf("Number = %q", inv.Number)
	}
	if inv.PublicID == "" {
		t.Error("PublicID not set")
	}
	if inv.GrandTotal != engine.FromMajor(1080) || doc.Totals.GrandTotal != inv.GrandTotal {
		t.Errorf("GrandTotal = %s / %s", inv.GrandTotal, doc.Totals.GrandTotal)
	}
	if inv.CGST != engine.FromMajor(90) || inv.SGST != engine.FromMajor(90) {
		t.Errorf("CGST/SGST = %s/%s", inv.CGST, inv.SGST)
	}
	if inv.Status != engine.InvoicePaid || inv.Balance != 0 {
		t.Errorf("status %s balance %s", inv.Status, inv.Balance)
	}
	if inv.CustomerName != "Acme Traders" || inv.GSTIN != "29ABCDE1234F1Z5" {
		t.Errorf("party snapshot = %+v", inv.PartySnapshot)
	}

	got, err := svc.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].LineTotal != engine.FromMajor(1000) {
		t.Errorf("items = %+v", got.Items)
	}
	if len(got.Payments) != 1 || got.Payments[0].Amount != engine.FromMajor(1080) || got.Payments[0].Method != "OPENING" {
		t.Errorf("payments = %+v", got.Payments)
	}
	if due := time.Time(got.DueDate); !due.Equal(time.Date(2026, 11, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DueDate = %v", due)
	}

	// The stored record recomputes to the same figures.
	if again := InvoiceDocument(got); !again.Totals.Equal(doc.Totals) || again.Status != doc.Status {
		t.Errorf("reloaded totals %+v, want %+v", again.Totals, doc.Totals)
	}

	second, _, err := svc.CreateInvoice(ctx, widgetInvoice(inv.CustomerID, ""), 7)
	if err != nil {
		t.Fatal(err)
	}
	if second.Number != "INV-2026-000002" {
		t.Errorf("second Number = %q", second.Number)
	}
}

func TestCreateInvoiceRejectsIncompleteDocuments(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	noGSTIN := seedCustomer(t, db, models.Customer{
		Name: "No GSTIN Pvt Ltd", CustomerType: engine.CustomerBusiness,
		BillingAddress: "1 Park St", State: "West Bengal", Pincode: "700016",
	})

	tests := []struct {
		name string
		in   DocumentInput
		want []string
	}{
		{"gst business without gstin", widgetInvoice(noGSTIN, ""), []string{engine.FieldGSTIN}},
		{"no items", DocumentInput{CustomerID: noGSTIN}, []string{engine.FieldItems}},
		{"unknown tax mode", DocumentInput{CustomerID: noGSTIN, TaxMode: "VAT"}, []string{"tax_mode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.CreateInvoice(ctx, tt.in, 1)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if !reflect.DeepEqual(ve.Fields, tt.want) {
				t.Errorf("fields = %v, want %v", ve.Fields, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("ValidationError does not unwrap to ErrValidation")
			}
		})
	}

	var n int64
	db.Model(&models.Invoice{}).Count(&n)
	if n != 0 {
		t.Errorf("%d invoices stored", n)
	}

	// Non-GST invoices need no GSTIN.
	in := widgetInvoice(noGSTIN, "")
	in.TaxMode = "NONE"
	if _, _, err := svc.CreateInvoice(ctx, in, 1); err != nil {
		t.Errorf("non-GST invoice: %v", err)
	}
}

func TestCreateInvoiceTotalsMismatch(t *testing.T) {
	svc, db := newTestService(t)

	in := widgetInvoice(acme(t, db), "")
	// Discount applied before tax on the client: (1000 - 100) * 1.18.
	in.Totals = &ClientTotals{GrandTotal: money(1062)}

	_, _, err := svc.CreateInvoice(context.Background(), in, 1)
	var me *MismatchError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want MismatchError", err)
	}
	if me.Computed.Totals.GrandTotal != engine.FromMajor(1080) {
		t.Errorf("computed grand total = %s", me.Computed.Totals.GrandTotal)
	}

	in.Totals = &ClientTotals{GrandTotal: money(1080), TaxAmount: money(180)}
	if _, _, err := svc.CreateInvoice(context.Background(), in, 1); err != nil {
		t.Errorf("matching totals rejected: %v", err)
	}
}

func TestCatalogLinesAreClamped(t *testing.T) {
	svc, db := newTestService(t)
	item := models.CatalogItem{Name: "Seat licence", Code: "LIC-1", MinPrice: engine.FromMajor(100), MaxPrice: engine.FromMajor(200)}
	if err := db.Create(&item).Error; err != nil {
		t.Fatal(err)
	}

	in := DocumentInput{
		Party: &engine.Party{Name: "Walk-in", BillingAddress: "Counter 1"},
		Items: []LineInput{
			{ID: "a", CatalogItemID: &item.ID, Quantity: "3", Rate: "250"},
			{ID: "b", CatalogItemID: &item.ID},
		},
	}
	inv, doc, err := svc.CreateInvoice(context.Background(), in, 1)
	if err != nil {
		t.Fatal(err)
	}

	if inv.Items[0].Rate != engine.FromMajor(200) || inv.Items[0].Description != "Seat licence" {
		t.Errorf("line 0 = %+v", inv.Items[0].LineFields)
	}
	if inv.Items[1].Rate != engine.FromMajor(100) {
		t.Errorf("line 1 rate = %s, want the floor", inv.Items[1].Rate)
	}
	if inv.Subtotal != engine.FromMajor(700) {
		t.Errorf("Subtotal = %s", inv.Subtotal)
	}
	if len(doc.Notices) != 1 || doc.Notices[0].Field != "items[0].rate" {
		t.Errorf("notices = %+v", doc.Notices)
	}
	if inv.Items[0].CatalogItemID == nil || *inv.Items[0].CatalogItemID != item.ID {
		t.Error("catalog link lost")
	}

	missing := uint(999)
	in.Items = []LineInput{{CatalogItemID: &missing}}
	if _, _, err := svc.CreateInvoice(context.Background(), in, 1); !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("missing catalog item: err = %v", err)
	}
}

func TestRecordPayment(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inv, _, err := svc.CreateInvoice(ctx, widgetInvoice(acme(t, db), ""), 1)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Status != engine.InvoiceUnpaid {
		t.Fatalf("new invoice status = %s", inv.Status)
	}

	steps := []struct {
		amount      string
		wantErr     error
		wantStatus  engine.Status
		wantBalance engine.Money
	}{
		{"500", nil, engine.InvoicePartial, engine.FromMajor(580)},
		{"0", ErrValidation, engine.InvoicePartial, engine.FromMajor(580)},
		{"600", ErrOverpayment, engine.InvoicePartial, engine.FromMajor(580)},
		{"580", nil, engine.InvoicePaid, 0},
	}
	for _, s := range steps {
		got, err := svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: engine.Raw(s.amount), Method: "upi"}, 2)
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("pay %s: err = %v, want %v", s.amount, err, s.wantErr)
		}
		if err != nil {
			continue
		}
		if got.Status != s.wantStatus || got.Balance != s.wantBalance {
			t.Errorf("pay %s: status %s balance %s", s.amount, got.Status, got.Balance)
		}
	}

	stored, _ := svc.GetInvoice(ctx, inv.ID)
	if len(stored.Payments) != 2 || stored.PaidAmount != engine.FromMajor(1080) || stored.Payments[0].Method != "UPI" {
		t.Errorf("stored = paid %s, payments %+v", stored.PaidAmount, stored.Payments)
	}
}

func TestManualStatusSurvivesPayments(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inv, _, err := svc.CreateInvoice(ctx, widgetInvoice(acme(t, db), ""), 1)
	if err != nil {
		t.Fatal(err)
	}
	if inv, err = svc.ChangeInvoiceStatus(ctx, inv.ID, "sent"); err != nil || inv.Status != engine.InvoiceSent {
		t.Fatalf("mark sent: %s, %v", inv.Status, err)
	}
	inv, err = svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: "1080"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Status != engine.InvoiceSent || inv.Balance != 0 {
		t.Errorf("status %s balance %s, want SENT / 0", inv.Status, inv.Balance)
	}

	// Handing it back to payment tracking derives PAID.
	inv, err = svc.ChangeInvoiceStatus(ctx, inv.ID, "UNPAID")
	if err != nil || inv.Status != engine.InvoicePaid {
		t.Errorf("back to tracking: %s, %v", inv.Status, err)
	}

	if _, err := svc.ChangeInvoiceStatus(ctx, inv.ID, "APPROVED"); !errors.Is(err, engine.ErrUnknownStatus) {
		t.Errorf("quotation status on invoice: err = %v", err)
	}
}

func TestUpdateInvoiceKeepsPayments(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cust := acme(t, db)
	inv, _, err := svc.CreateInvoice(ctx, widgetInvoice(cust, "500"), 1)
	if err != nil {
		t.Fatal(err)
	}

	in := widgetInvoice(cust, "99999") // paid_amount on update is ignored
	in.Items = append(in.Items, LineInput{ID: "l2", Description: "Install", Quantity: "1", Rate: "200"})
	updated, doc, err := svc.UpdateInvoice(ctx, inv.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	// 1200 + 216 tax - 100 discount
	if updated.GrandTotal != engine.FromMajor(1316) || updated.PaidAmount != engine.FromMajor(500) {
		t.Errorf("grand %s paid %s", updated.GrandTotal, updated.PaidAmount)
	}
	if updated.Balance != engine.FromMajor(816) || doc.Status != engine.InvoicePartial {
		t.Errorf("balance %s status %s", updated.Balance, doc.Status)
	}
	if updated.Number != inv.Number {
		t.Errorf("number changed to %s", updated.Number)
	}

	stored, _ := svc.GetInvoice(ctx, inv.ID)
	if len(stored.Items) != 2 || stored.Items[1].Description != "Install" {
		t.Errorf("items = %+v", stored.Items)
	}

	if _, _, err := svc.UpdateInvoice(ctx, 4242, in); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("missing invoice: err = %v", err)
	}
}

func TestDeleteInvoice(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	inv, _, err := svc.CreateInvoice(ctx, widgetInvoice(acme(t, db), "1080"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteInvoice(ctx, inv.ID); !errors.Is(err, ErrNotDeletable) {
		t.Fatalf("deleting a paid invoice: err = %v", err)
	}
	if _, err := svc.ChangeInvoiceStatus(ctx, inv.ID, "CANCELLED"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordPayment(ctx, inv.ID, PaymentInput{Amount: "1"}, 1); !errors.Is(err, ErrPaymentNotAllowed) {
		t.Errorf("payment on cancelled invoice: err = %v", err)
	}
	if err := svc.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetInvoice(ctx, inv.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("after delete: err = %v", err)
	}
	var rows int64
	db.Model(&models.InvoicePayment{}).Count(&rows)
	if rows != 0 {
		t.Errorf("%d payment rows left", rows)
	}
}

func TestConvertQuotation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	in := DocumentInput{
		CustomerID: acme(t, db),
		TaxMode:    "gst",
		TaxRate:    "18",
		Terms:      "Valid for 15 days",
		Items:      []LineInput{{Description: "Audit", Quantity: "1", Rate: "5000"}},
	}
	q, doc, err := svc.CreateQuotation(ctx, in, 3)
	if err != nil {
		t.Fatal(err)
	}
	if q.Number != "QT-2026-000001" || q.Status != engine.QuotationDraft || doc.Totals.GrandTotal != engine.FromMajor(5900) {
		t.Fatalf("quotation %s %s %s", q.Number, q.Status, doc.Totals.GrandTotal)
	}
	if vu := time.Time(q.ValidUntil); !vu.Equal(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ValidUntil = %v", vu)
	}

	if _, err := svc.ConvertQuotation(ctx, q.ID, 3); !errors.Is(err, engine.ErrQuotationNotApproved) {
		t.Fatalf("draft convert: err = %v", err)
	}
	if _, err := svc.ChangeQuotationStatus(ctx, q.ID, "APPROVED"); err != nil {
		t.Fatal(err)
	}

	inv, err := svc.ConvertQuotation(ctx, q.ID, 3)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if inv.Number != "INV-2026-000001" || inv.GrandTotal != engine.FromMajor(5900) || inv.Status != engine.InvoiceUnpaid {
		t.Errorf("invoice %s %s %s", inv.Number, inv.GrandTotal, inv.Status)
	}
	if inv.QuotationID == nil || *inv.QuotationID != q.ID || inv.Terms != "Valid for 15 days" {
		t.Errorf("links/terms: %v %q", inv.QuotationID, inv.Terms)
	}

	if _, err := svc.ConvertQuotation(ctx, q.ID, 3); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("second convert: err = %v", err)
	}
	if _, _, err := svc.UpdateQuotation(ctx, q.ID, in); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("edit after convert: err = %v", err)
	}
}

func TestQuotationRejectsInvoiceStatus(t *testing.T) {
	svc, db := newTestService(t)
	in := widgetInvoice(acme(t, db), "")
	in.Status = "SENT"
	_, _, err := svc.CreateQuotation(context.Background(), in, 1)
	var ve *ValidationError
	if !errors.As(err, &ve) || !reflect.DeepEqual(ve.Fields, []string{"status"}) {
		t.Errorf("err = %v", err)
	}
}

func TestPreview(t *testing.T) {
	svc, _ := newTestService(t)
	doc, violations, err := svc.Preview(context.Background(), engine.KindInvoice, DocumentInput{
		TaxMode: "GST",
		TaxRate: "18",
		Items:   []LineInput{{Description: "x", Quantity: "1", Rate: "100"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Totals.GrandTotal != engine.FromMajor(118) {
		t.Errorf("grand = %s", doc.Totals.GrandTotal)
	}
	want := []string{engine.FieldBillingAddress, engine.FieldState}
	if !reflect.DeepEqual(violations, want) {
		t.Errorf("violations = %v, want %v", violations, want)
	}
}

func TestListInvoices(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	cust := acme(t, db)

	for _, paid := range []string{"", "500", "1080"} {
		if _, _, err := svc.CreateInvoice(ctx, widgetInvoice(cust, paid), 1); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := svc.ListInvoices(ctx, ListFilter{Status: "partial"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Number != "INV-2026-000002" {
		t.Errorf("partial: total %d rows %+v", total, rows)
	}

	rows, total, err = svc.ListInvoices(ctx, ListFilter{Query: "acme", SortBy: "number", PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 2 || rows[0].Number != "INV-2026-000001" {
		t.Errorf("page: total %d len %d", total, len(rows))
	}
	if len(rows[0].Items) != 1 {
		t.Error("items not preloaded")
	}
}

func TestOffers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := OfferInput{
		CandidateName: "Asha Menon",
		Designation:   "Backend Engineer",
		JoiningDate:   "2026-11-02",
		Mode:          "SIMPLE",
		Monthly:       "50000",
	}
	o, err := svc.CreateOffer(ctx, in, 1)
	if err != nil {
		t.Fatal(err)
	}
	if o.Number != "OL-2026-000001" || o.PackageCTC != engine.FromMajor(600000) {
		t.Errorf("offer %s ctc %s", o.Number, o.PackageCTC)
	}

	in.Monthly = "50000"
	in.AnnualCTC = "720000"
	in.Edited = "annual"
	o, err = svc.UpdateOffer(ctx, o.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if o.PackageMonthly != engine.FromMajor(60000) {
		t.Errorf("monthly = %s", o.PackageMonthly)
	}

	structured := OfferInput{
		CandidateName: "R. Iyer",
		Designation:   "Analyst",
		Basic:         "30000",
		HRA:           "12000",
		Allowances:    []AllowanceInput{{Name: "Conveyance", Amount: "1600"}},
		Deductions:    DeductionsInput{PF: "1800"},
	}
	o, err = svc.CreateOffer(ctx, structured, 1)
	if err != nil {
		t.Fatal(err)
	}
	if o.Gross != engine.FromMajor(43600) || o.Net != engine.FromMajor(41800) || o.StructureCTC != engine.FromMajor((43600+1800)*12) {
		t.Errorf("gross %s net %s ctc %s", o.Gross, o.Net, o.StructureCTC)
	}
	got, err := svc.GetOffer(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Allowances) != 1 || OfferFromModel(got).AnnualCTC() != o.StructureCTC {
		t.Errorf("reloaded offer = %+v", got)
	}

	_, err = svc.CreateOffer(ctx, OfferInput{Mode: "HOURLY"}, 1)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Fields[0] != "mode" {
		t.Errorf("bad mode: err = %v", err)
	}
	_, err = svc.CreateOffer(ctx, OfferInput{}, 1)
	if !errors.As(err, &ve) || !reflect.DeepEqual(ve.Fields, []string{"candidate_name", "designation", "compensation"}) {
		t.Errorf("empty offer: err = %v", err)
	}
}

func TestStoredDocumentsKeepCommittedFigures(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	customer := acme(t, db)

	inv, _, err := svc.CreateInvoice(ctx, widgetInvoice(customer, "500"), 1)
	if err != nil {
		t.Fatal(err)
	}
	// figures written by an older rounding rule stay as committed
	err = db.Model(&models.Invoice{}).Where("id = ?", inv.ID).
		Updates(map[string]any{"grand_total": int64(engine.FromMajor(1081)), "balance": int64(engine.FromMajor(581))}).Error
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	stored := StoredInvoice(got).Totals
	if stored.GrandTotal != engine.FromMajor(1081) || stored.Balance != engine.FromMajor(581) || stored.PaidAmount != engine.FromMajor(500) {
		t.Errorf("stored totals = %+v", stored)
	}
	if stored.Tax.CGST() != engine.FromMajor(90) || len(stored.Tax.Lines) != 2 || !stored.Tax.Lines[0].RatePercent.Equal(decimal.NewFromInt(9)) {
		t.Errorf("stored tax = %+v", stored.Tax)
	}
	if again := InvoiceDocument(got).Totals; again.GrandTotal != engine.FromMajor(1080) {
		t.Errorf("recomputed grand total = %s", again.GrandTotal)
	}

	q, _, err := svc.CreateQuotation(ctx, DocumentInput{
		CustomerID: customer,
		TaxMode:    "FLAT",
		TaxRate:    "10",
		Items:      []LineInput{{Description: "Audit", Quantity: "1", Rate: "5000"}},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&models.Quotation{}).Where("id = ?", q.ID).Update("subtotal", int64(engine.FromMajor(5001))).Error; err != nil {
		t.Fatal(err)
	}
	gotQ, err := svc.GetQuotation(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	qt := StoredQuotation(gotQ).Totals
	if qt.Subtotal != engine.FromMajor(5001) || qt.GrandTotal != engine.FromMajor(5500) || qt.Balance != qt.GrandTotal {
		t.Errorf("stored quotation totals = %+v", qt)
	}
	if len(qt.Tax.Lines) != 1 || qt.Tax.Lines[0].Amount != engine.FromMajor(500) {
		t.Errorf("flat tax lines = %+v", qt.Tax.Lines)
	}

	o, err := svc.CreateOffer(ctx, OfferInput{CandidateName: "R. Iyer", Designation: "Analyst", Basic: "30000", HRA: "12000"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&models.OfferLetter{}).Where("id = ?", o.ID).Update("structure_ctc", int64(engine.FromMajor(500000))).Error; err != nil {
		t.Fatal(err)
	}
	gotO, err := svc.GetOffer(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if ctc := StoredOffer(gotO).AnnualCTC(); ctc != engine.FromMajor(500000) {
		t.Errorf("stored offer ctc = %s", ctc)
	}
	if s := StoredOffer(gotO).Structure; s.Gross != engine.FromMajor(42000) || s.Net != engine.FromMajor(42000) {
		t.Errorf("stored structure = %+v", s)
	}
}
