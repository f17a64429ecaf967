package models

import (
	"time"

	"go-bizops-dashboard/engine"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quotation struct {
	ID         uint   `gorm:"primaryKey"                   json:"id"`
	PublicID   string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	Number     string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	NumberSeq  uint   `gorm:"not null;default:0"           json:"-"`
	BusinessID *uint  `gorm:"index"                        json:"business_id"`
	CustomerID *uint  `gorm:"index"                        json:"customer_id"`

	PartySnapshot `gorm:"embedded"`

	IssueDate  datatypes.Date `gorm:"not null" json:"issue_date"`
	ValidUntil datatypes.Date `json:"valid_until"`
	Status     engine.Status  `gorm:"size:12;index;not null" json:"status"`
	Terms      string         `gorm:"type:text"              json:"terms"`

	DocumentFigures `gorm:"embedded"`

	// Set once the quotation has been turned into an invoice.
	ConvertedInvoiceID *uint `gorm:"index" json:"converted_invoice_id"`

	Items []QuotationItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedByID uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.PublicID == "" {
		q.PublicID = uuid.NewString()
	}
	return nil
}

type QuotationItem struct {
	ID          uint `gorm:"primaryKey"     json:"id"`
	QuotationID uint `gorm:"index;not null" json:"quotation_id"`
	LineFields  `gorm:"embedded"`
}
