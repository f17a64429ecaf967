package utils

import (
	"fmt"
	"time"
)

// Document number prefixes.
const (
	PrefixInvoice   = "INV"
	PrefixQuotation = "QT"
	PrefixOffer     = "OL"
)

// DocumentNumber formats e.g. INV-2026-000123.
func DocumentNumber(prefix string, seq uint, t time.Time) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, t.Year(), seq)
}
