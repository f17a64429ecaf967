package models

import "gorm.io/gorm"

type TermsKind string

const (
	TermsInvoice   TermsKind = "INVOICE"
	TermsQuotation TermsKind = "QUOTATION"
	TermsOffer     TermsKind = "OFFER"
)

// TermsTemplate text is copied verbatim into the document that uses it.
type TermsTemplate struct {
	gorm.Model
	Title     string    `gorm:"size:180;not null"       json:"title"`
	Kind      TermsKind `gorm:"size:12;not null;index"  json:"kind"`
	Body      string    `gorm:"type:text"               json:"body"`
	IsDefault bool      `gorm:"not null;default:false"  json:"is_default"`
}
