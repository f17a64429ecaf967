package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type NoticeKind string

const (
	ClampedValue NoticeKind = "CLAMPED_VALUE"
	// Overpaid: paid amount exceeds the grand total. From is the paid
	// amount, To the grand total.
	Overpaid NoticeKind = "OVERPAID"
)

// Notice is a non-blocking message about an input that was auto-corrected.
type Notice struct {
	Kind  NoticeKind `json:"kind"`
	Field string     `json:"field"`
	From  Money      `json:"from"`
	To    Money      `json:"to"`
}

func (n Notice) Message() string {
	if n.Kind == Overpaid {
		return fmt.Sprintf("%s %s exceeds the grand total %s", n.Field, n.From, n.To)
	}
	return fmt.Sprintf("%s adjusted from %s to %s to stay within the catalog price range", n.Field, n.From, n.To)
}

// LineItem is one billable row. LineTotal is derived.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        Money           `json:"rate"`
	Floor       *Money          `json:"price_floor,omitempty"`
	Ceiling     *Money          `json:"price_ceiling,omitempty"`
	LineTotal   Money           `json:"line_total"`
}

// CatalogEntry is what the catalog lookup hands back for an item.
type CatalogEntry struct {
	Name     string
	MinPrice Money
	MaxPrice Money
}

// LineItemFromCatalog seeds a line at quantity 1 priced at the catalog
// minimum. A zero MaxPrice means the item has no ceiling.
func LineItemFromCatalog(id string, e CatalogEntry) LineItem {
	floor := e.MinPrice.NonNegative()
	item := LineItem{
		ID:          id,
		Description: e.Name,
		Quantity:    decimal.NewFromInt(1),
		Rate:        floor,
		Floor:       &floor,
	}
	if e.MaxPrice > 0 {
		ceiling := e.MaxPrice
		item.Ceiling = &ceiling
	}
	return item
}

// ClampRate bounds rate to [floor, ceiling]; nil bounds are open. When the
// bounds cross, the ceiling wins.
func ClampRate(rate Money, floor, ceiling *Money) Money {
	if floor != nil && rate < *floor {
		rate = *floor
	}
	if ceiling != nil && rate > *ceiling {
		rate = *ceiling
	}
	return rate
}

// NormalizeLine clamps quantity and rate and derives the line total.
// index is only used to name the field in notices.
func NormalizeLine(index int, item LineItem) (LineItem, []Notice) {
	var notices []Notice

	item.Quantity = normalizeQuantity(item.Quantity)
	item.Rate = item.Rate.NonNegative()

	clamped := ClampRate(item.Rate, item.Floor, item.Ceiling)
	if clamped != item.Rate {
		notices = append(notices, Notice{
			Kind:  ClampedValue,
			Field: fmt.Sprintf("items[%d].rate", index),
			From:  item.Rate,
			To:    clamped,
		})
		item.Rate = clamped
	}

	item.LineTotal = item.Rate.MulQuantity(item.Quantity)
	return item, notices
}

// AggregateLines normalizes every line and sums the subtotal. The input slice
// is not modified.
func AggregateLines(items []LineItem) ([]LineItem, Money, []Notice) {
	out := make([]LineItem, len(items))
	var (
		subtotal Money
		notices  []Notice
	)
	for i, it := range items {
		line, n := NormalizeLine(i, it)
		out[i] = line
		subtotal = subtotal.Add(line.LineTotal)
		notices = append(notices, n...)
	}
	return out, subtotal, notices
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		if it.Floor != nil {
			f := *it.Floor
			it.Floor = &f
		}
		if it.Ceiling != nil {
			c := *it.Ceiling
			it.Ceiling = &c
		}
		out[i] = it
	}
	return out
}
