package models

import (
	"go-bizops-dashboard/engine"

	"gorm.io/gorm"
)

// CatalogItem is a sellable product or service. MinPrice and MaxPrice bound
// the rate of any line seeded from it; MaxPrice 0 means no ceiling.
type CatalogItem struct {
	gorm.Model
	Name     string       `gorm:"size:200;not null" json:"name"`
	Code     string       `gorm:"size:60;unique"    json:"code"`
	Unit     string       `gorm:"size:30"           json:"unit"`
	HSNCode  string       `gorm:"column:hsn_code;size:12" json:"hsn_code"`
	MinPrice engine.Money `gorm:"not null;default:0" json:"min_price"`
	MaxPrice engine.Money `gorm:"not null;default:0" json:"max_price"`
	IsActive bool         `gorm:"default:true"      json:"is_active"`
}

func (ci CatalogItem) Entry() engine.CatalogEntry {
	return engine.CatalogEntry{Name: ci.Name, MinPrice: ci.MinPrice, MaxPrice: ci.MaxPrice}
}
