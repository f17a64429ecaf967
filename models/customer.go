package models

import (
	"go-bizops-dashboard/engine"

	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	Name           string              `gorm:"size:180;not null" json:"name"`
	Code           string              `gorm:"size:40;index"     json:"code"`
	CustomerType   engine.CustomerType `gorm:"size:12;not null;default:INDIVIDUAL" json:"customer_type"`
	Email          string              `gorm:"size:180"          json:"email"`
	Phone          string              `gorm:"size:60"           json:"phone"`
	BillingAddress string              `gorm:"size:255"          json:"billing_address"`
	State          string              `gorm:"size:80"           json:"state"`
	Pincode        string              `gorm:"size:6"            json:"pincode"`
	GSTIN          string              `gorm:"column:gstin;size:15" json:"gstin"`
}

// Party is the bill-to snapshot copied onto a document.
func (c Customer) Party() engine.Party {
	return engine.Party{
		Name:           c.Name,
		CustomerType:   c.CustomerType,
		BillingAddress: c.BillingAddress,
		State:          c.State,
		Pincode:        c.Pincode,
		GSTIN:          c.GSTIN,
	}
}
