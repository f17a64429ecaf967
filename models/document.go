package models

import (
	"go-bizops-dashboard/engine"

	"github.com/shopspring/decimal"
)

// PartySnapshot is the bill-to block as it was when the document was saved.
// Later edits to the customer record do not change it.
type PartySnapshot struct {
	CustomerName   string              `gorm:"size:180"              json:"customer_name"`
	CustomerType   engine.CustomerType `gorm:"size:12"               json:"customer_type"`
	BillingAddress string              `gorm:"size:255"              json:"billing_address"`
	State          string              `gorm:"size:80"               json:"state"`
	Pincode        string              `gorm:"size:6"                json:"pincode"`
	GSTIN          string              `gorm:"column:gstin;size:15"  json:"gstin"`
}

// DocumentFigures holds the tax inputs and every derived amount. The derived
// columns are written from engine.Recompute only.
type DocumentFigures struct {
	TaxMode    engine.TaxMode  `gorm:"size:8;not null;default:NONE"         json:"tax_mode"`
	TaxRate    decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"tax_rate"`
	Discount   engine.Money    `gorm:"not null;default:0"                   json:"discount"`
	Subtotal   engine.Money    `gorm:"not null;default:0"                   json:"subtotal"`
	TaxAmount  engine.Money    `gorm:"not null;default:0"                   json:"tax_amount"`
	CGST       engine.Money    `gorm:"column:cgst;not null;default:0"       json:"cgst"`
	SGST       engine.Money    `gorm:"column:sgst;not null;default:0"       json:"sgst"`
	GrandTotal engine.Money    `gorm:"not null;default:0"                   json:"grand_total"`
}

// LineFields is shared by invoice and quotation items.
type LineFields struct {
	Position      int             `gorm:"not null"                    json:"position"`
	LineRef       string          `gorm:"size:64"                     json:"line_ref"`
	CatalogItemID *uint           `gorm:"index"                       json:"catalog_item_id"`
	Description   string          `gorm:"size:255;not null"           json:"description"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	Rate          engine.Money    `gorm:"not null"                    json:"rate"`
	PriceFloor    *engine.Money   `json:"price_floor"`
	PriceCeiling  *engine.Money   `json:"price_ceiling"`
	LineTotal     engine.Money    `gorm:"not null"                    json:"line_total"`
}
