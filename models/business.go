package models

import "gorm.io/gorm"

// Business is the issuing company shown in document headers. Its fields are
// printed as-is and never enter any computation.
type Business struct {
	gorm.Model
	Name        string `gorm:"size:180;not null" json:"name"`
	Address     string `gorm:"size:255"          json:"address"`
	State       string `gorm:"size:80"           json:"state"`
	Pincode     string `gorm:"size:6"            json:"pincode"`
	GSTIN       string `gorm:"column:gstin;size:15" json:"gstin"`
	Email       string `gorm:"size:180"          json:"email"`
	Phone       string `gorm:"size:60"           json:"phone"`
	BankDetails string `gorm:"size:500"          json:"bank_details"`
	LogoURL     string `gorm:"size:255"          json:"logo_url"`
}
