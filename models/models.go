package models

// All lists every table for AutoMigrate, parents before children.
func All() []any {
	return []any{
		&Admin{},
		&User{},
		&Permission{},
		&UserPermission{},
		&Customer{},
		&CatalogItem{},
		&Business{},
		&TermsTemplate{},
		&Quotation{},
		&QuotationItem{},
		&Invoice{},
		&InvoiceItem{},
		&InvoicePayment{},
		&OfferLetter{},
		&OfferAllowance{},
	}
}
