package config

import (
	"go-bizops-dashboard/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var permissions = []models.Permission{
	{Code: models.PermInvoice, Name: "Invoices"},
	{Code: models.PermQuotation, Name: "Quotations"},
	{Code: models.PermOffer, Name: "Offer letters"},
	{Code: models.PermCustomer, Name: "Customers"},
	{Code: models.PermCatalog, Name: "Product catalog"},
	{Code: models.PermReportView, Name: "Reports"},
}

// SeedPermissions inserts any missing permission codes. Existing rows are
// left alone.
func SeedPermissions(db *gorm.DB) error {
	for _, p := range permissions {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
