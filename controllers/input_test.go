package controllers

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go-bizops-dashboard/engine"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestCustomerInput(t *testing.T) {
	tests := []struct {
		name     string
		in       CustomerInput
		wantType engine.CustomerType
		wantBad  []string
	}{
		{"defaults to individual", CustomerInput{Name: "R. Rao"}, engine.CustomerIndividual, nil},
		{"business lower case", CustomerInput{Name: "Acme", CustomerType: "business", GSTIN: "29abcde1234f1z5"}, engine.CustomerBusiness, nil},
		{"unknown type", CustomerInput{Name: "x", CustomerType: "trust"}, "TRUST", []string{"customer_type"}},
		{"bad gstin and pincode", CustomerInput{Name: "x", GSTIN: "123", Pincode: "0123"}, engine.CustomerIndividual, []string{"gstin", "pincode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bad := tt.in.customer()
			if c.CustomerType != tt.wantType || !reflect.DeepEqual(bad, tt.wantBad) {
				t.Errorf("got %s %v, want %s %v", c.CustomerType, bad, tt.wantType, tt.wantBad)
			}
		})
	}
}

func TestCatalogInput(t *testing.T) {
	item, bad := CatalogInput{Name: "Seat licence", MinPrice: "200", MaxPrice: "100"}.item()
	if !reflect.DeepEqual(bad, []string{"max_price"}) {
		t.Errorf("bad = %v", bad)
	}
	if item.MinPrice != engine.FromMajor(200) {
		t.Errorf("min = %s", item.MinPrice)
	}

	// no ceiling
	if _, bad := (CatalogInput{Name: "Support", MinPrice: "200"}).item(); len(bad) != 0 {
		t.Errorf("bad = %v", bad)
	}
}

func TestTermsKind(t *testing.T) {
	if k, ok := termsKind(" quotation "); !ok || k != "QUOTATION" {
		t.Errorf("got %s %v", k, ok)
	}
	if _, ok := termsKind("memo"); ok {
		t.Error("memo accepted")
	}
}

func TestListFilter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?status=paid&customer_id=4&date_from=2026-01-31&page=0&page_size=20&sort=-number&date_to=bad", nil)

	f := listFilter(c)
	if f.Status != "paid" || f.CustomerID == nil || *f.CustomerID != 4 || f.SortBy != "-number" {
		t.Errorf("filter = %+v", f)
	}
	if f.Page != 1 || f.PageSize != 20 {
		t.Errorf("page %d size %d", f.Page, f.PageSize)
	}
	if f.DateFrom == nil || !f.DateFrom.Equal(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)) || f.DateTo != nil {
		t.Errorf("dates %v %v", f.DateFrom, f.DateTo)
	}
}

func TestIDParam(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		if _, ok := idParam(c); ok || w.Code != http.StatusBadRequest {
			t.Errorf("%q: ok=%v code=%d", raw, ok, w.Code)
		}
	}
}
