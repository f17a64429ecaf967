package models

import (
	"time"

	"go-bizops-dashboard/engine"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Invoice struct {
	ID          uint   `gorm:"primaryKey"                   json:"id"`
	PublicID    string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	Number      string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	NumberSeq   uint   `gorm:"not null;default:0"           json:"-"`
	BusinessID  *uint  `gorm:"index"                        json:"business_id"`
	CustomerID  *uint  `gorm:"index"                        json:"customer_id"`
	QuotationID *uint  `gorm:"index"                        json:"quotation_id"`

	PartySnapshot `gorm:"embedded"`

	IssueDate datatypes.Date `gorm:"not null" json:"issue_date"`
	DueDate   datatypes.Date `json:"due_date"`
	Status    engine.Status  `gorm:"size:12;index;not null" json:"status"`
	Terms     string         `gorm:"type:text"              json:"terms"`

	DocumentFigures `gorm:"embedded"`
	PaidAmount      engine.Money `gorm:"not null;default:0" json:"paid_amount"`
	Balance         engine.Money `gorm:"not null;default:0" json:"balance"`

	Items    []InvoiceItem    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments []InvoicePayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`

	CreatedByID uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.PublicID == "" {
		i.PublicID = uuid.NewString()
	}
	return nil
}

type InvoiceItem struct {
	ID         uint `gorm:"primaryKey"     json:"id"`
	InvoiceID  uint `gorm:"index;not null" json:"invoice_id"`
	LineFields `gorm:"embedded"`
}

// InvoicePayment is one receipt against an invoice. The invoice's PaidAmount
// is always the sum of these rows.
type InvoicePayment struct {
	ID           uint         `gorm:"primaryKey"         json:"id"`
	InvoiceID    uint         `gorm:"index;not null"     json:"invoice_id"`
	Amount       engine.Money `gorm:"not null"           json:"amount"`
	Method       string       `gorm:"size:20;not null"   json:"method"` // CASH / BANK / UPI / CHEQUE
	Reference    string       `gorm:"size:80"            json:"reference,omitempty"`
	ReceivedAt   time.Time    `gorm:"not null"           json:"received_at"`
	ReceivedByID uint         `gorm:"index"              json:"received_by_id"`
	Note         string       `gorm:"size:255"           json:"note,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
