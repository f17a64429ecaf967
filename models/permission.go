package models

import "time"

// Permission codes checked by middlewares.RequirePerm.
const (
	PermInvoice    = "INVOICE"
	PermQuotation  = "QUOTATION"
	PermOffer      = "OFFER"
	PermCustomer   = "CUSTOMER"
	PermCatalog    = "CATALOG"
	PermReportView = "REPORT_VIEW"
)

type Permission struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	Code      string    `gorm:"uniqueIndex;size:80;not null" json:"code"`
	Name      string    `gorm:"size:180;not null"            json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserPermission struct {
	UserID       uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PermissionID uint      `gorm:"primaryKey;autoIncrement:false" json:"permission_id"`
	GrantedAt    time.Time `json:"granted_at"`
}
