package engine

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TaxMode string

const (
	TaxGST  TaxMode = "GST"
	TaxFlat TaxMode = "FLAT"
	TaxNone TaxMode = "NONE"
)

var ErrUnknownTaxMode = errors.New("unknown tax mode")

// ParseTaxMode accepts GST, FLAT, NONE and NON_GST (an alias for NONE),
// case-insensitively.
func ParseTaxMode(s string) (TaxMode, error) {
	switch strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(s, "-", "_"))) {
	case "GST":
		return TaxGST, nil
	case "FLAT":
		return TaxFlat, nil
	case "NONE", "NON_GST", "":
		return TaxNone, nil
	}
	return "", ErrUnknownTaxMode
}

type TaxConfig struct {
	Mode        TaxMode         `json:"mode"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

// TaxLine is one row of the tax section as printed.
type TaxLine struct {
	Label       string          `json:"label"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      Money           `json:"amount"`
}

type TaxBreakdown struct {
	Mode        TaxMode         `json:"mode"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      Money           `json:"amount"`
	Lines       []TaxLine       `json:"lines"`
}

// ComputeTax applies cfg to subtotal.
//
// GST is split into CGST and SGST at half the rate each. CGST takes the floor
// of half the amount and SGST the remainder, so the two always add up to the
// tax amount even when it is an odd number of paise.
func ComputeTax(subtotal Money, cfg TaxConfig) TaxBreakdown {
	rate := cfg.RatePercent
	if rate.IsNegative() {
		rate = decimal.Zero
	}

	switch cfg.Mode {
	case TaxGST:
		amount := subtotal.Percent(rate)
		cgst := amount / 2
		half := rate.Div(decimal.NewFromInt(2))
		return TaxBreakdown{
			Mode:        TaxGST,
			RatePercent: rate,
			Amount:      amount,
			Lines: []TaxLine{
				{Label: "CGST", RatePercent: half, Amount: cgst},
				{Label: "SGST", RatePercent: half, Amount: amount - cgst},
			},
		}
	case TaxFlat:
		amount := subtotal.Percent(rate)
		return TaxBreakdown{
			Mode:        TaxFlat,
			RatePercent: rate,
			Amount:      amount,
			Lines:       []TaxLine{{Label: "Tax", RatePercent: rate, Amount: amount}},
		}
	default:
		return TaxBreakdown{Mode: TaxNone, RatePercent: decimal.Zero}
	}
}

// TaxBreakdownOf rebuilds a breakdown from figures that were already
// computed. Nothing is re-derived: cgst and sgst are printed as given.
func TaxBreakdownOf(mode TaxMode, rate decimal.Decimal, amount, cgst, sgst Money) TaxBreakdown {
	switch mode {
	case TaxGST:
		half := rate.Div(decimal.NewFromInt(2))
		return TaxBreakdown{
			Mode:        TaxGST,
			RatePercent: rate,
			Amount:      amount,
			Lines: []TaxLine{
				{Label: "CGST", RatePercent: half, Amount: cgst},
				{Label: "SGST", RatePercent: half, Amount: sgst},
			},
		}
	case TaxFlat:
		return TaxBreakdown{
			Mode:        TaxFlat,
			RatePercent: rate,
			Amount:      amount,
			Lines:       []TaxLine{{Label: "Tax", RatePercent: rate, Amount: amount}},
		}
	}
	return TaxBreakdown{Mode: TaxNone, RatePercent: decimal.Zero, Amount: amount}
}

// CGST is zero unless the breakdown is a GST split.
func (b TaxBreakdown) CGST() Money { return b.line("CGST") }

func (b TaxBreakdown) SGST() Money { return b.line("SGST") }

func (b TaxBreakdown) line(label string) Money {
	for _, l := range b.Lines {
		if l.Label == label {
			return l.Amount
		}
	}
	return 0
}
