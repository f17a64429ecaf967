package engine

import (
	"errors"
	"fmt"
)

var ErrNoSuchLine = errors.New("no such line item")

// Change is one input mutation from an edit session.
type Change interface {
	apply(d *Document) error
}

// Apply is the single update entry point: it applies ch to a copy of prior
// and recomputes every derived field. On error prior is returned untouched.
func Apply(prior Document, ch Change) (Document, error) {
	next := prior.Clone()
	if err := ch.apply(&next); err != nil {
		return prior, err
	}
	return Recompute(next), nil
}

// ApplyAll folds changes in order and stops at the first error. The result
// carries the clamp notices raised by every step; an overpayment notice is
// only kept if the final document is still overpaid.
func ApplyAll(prior Document, changes ...Change) (Document, error) {
	d := prior
	var notices []Notice
	for i, ch := range changes {
		next, err := Apply(d, ch)
		if err != nil {
			return d, fmt.Errorf("change %d: %w", i, err)
		}
		d = next
		for _, n := range d.Notices {
			if n.Kind == ClampedValue {
				notices = append(notices, n)
			}
		}
	}
	if len(changes) > 0 {
		for _, n := range d.Notices {
			if n.Kind != ClampedValue {
				notices = append(notices, n)
			}
		}
		d.Notices = notices
	}
	return d, nil
}

func line(d *Document, i int) (*LineItem, error) {
	if i < 0 || i >= len(d.Items) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchLine, i, len(d.Items))
	}
	return &d.Items[i], nil
}

// ===== line item changes =====

type AddItem struct{ Item LineItem }

func (c AddItem) apply(d *Document) error {
	d.Items = append(d.Items, cloneItems([]LineItem{c.Item})...)
	return nil
}

type AddCatalogItem struct {
	ID    string
	Entry CatalogEntry
}

func (c AddCatalogItem) apply(d *Document) error {
	d.Items = append(d.Items, LineItemFromCatalog(c.ID, c.Entry))
	return nil
}

type RemoveItem struct{ Index int }

func (c RemoveItem) apply(d *Document) error {
	if _, err := line(d, c.Index); err != nil {
		return err
	}
	d.Items = append(d.Items[:c.Index], d.Items[c.Index+1:]...)
	return nil
}

type SetDescription struct {
	Index int
	Text  string
}

func (c SetDescription) apply(d *Document) error {
	it, err := line(d, c.Index)
	if err != nil {
		return err
	}
	it.Description = c.Text
	return nil
}

type SetQuantity struct {
	Index int
	Raw   string
}

func (c SetQuantity) apply(d *Document) error {
	it, err := line(d, c.Index)
	if err != nil {
		return err
	}
	it.Quantity = ParseQuantity(c.Raw)
	return nil
}

type SetRate struct {
	Index int
	Raw   string
}

func (c SetRate) apply(d *Document) error {
	it, err := line(d, c.Index)
	if err != nil {
		return err
	}
	it.Rate = ParseMoney(c.Raw)
	return nil
}

// SetBounds replaces the catalog price range of a line; nil clears a bound.
type SetBounds struct {
	Index          int
	Floor, Ceiling *Money
}

func (c SetBounds) apply(d *Document) error {
	it, err := line(d, c.Index)
	if err != nil {
		return err
	}
	it.Floor, it.Ceiling = nil, nil
	if c.Floor != nil {
		f := *c.Floor
		it.Floor = &f
	}
	if c.Ceiling != nil {
		v := *c.Ceiling
		it.Ceiling = &v
	}
	return nil
}

// ===== document level changes =====

type SetTaxMode struct{ Mode TaxMode }

func (c SetTaxMode) apply(d *Document) error {
	switch c.Mode {
	case TaxGST, TaxFlat, TaxNone:
		d.Tax.Mode = c.Mode
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownTaxMode, c.Mode)
}

type SetTaxRate struct{ Raw string }

func (c SetTaxRate) apply(d *Document) error {
	d.Tax.RatePercent = ParseRate(c.Raw)
	return nil
}

type SetDiscount struct{ Raw string }

func (c SetDiscount) apply(d *Document) error {
	d.Discount = ParseMoney(c.Raw).NonNegative()
	return nil
}

// SetPaidAmount only exists for invoices.
type SetPaidAmount struct{ Raw string }

func (c SetPaidAmount) apply(d *Document) error {
	inv, ok := d.Details.(InvoiceDetails)
	if !ok {
		return fmt.Errorf("%w: paid amount on %s", ErrWrongKind, d.Kind())
	}
	inv.PaidAmount = ParseMoney(c.Raw).NonNegative()
	d.Details = inv
	return nil
}

type SetParty struct{ Party Party }

func (c SetParty) apply(d *Document) error {
	d.Party = c.Party
	return nil
}

// SetTerms carries template text through untouched.
type SetTerms struct{ Text string }

func (c SetTerms) apply(d *Document) error {
	d.Terms = c.Text
	return nil
}

// SetStatus is the explicit user/API status action.
type SetStatus struct{ Target Status }

func (c SetStatus) apply(d *Document) error {
	st, err := Transition(d.Kind(), d.Status, c.Target, Recompute(*d).Totals)
	if err != nil {
		return err
	}
	d.Status = st
	return nil
}

// Load replaces the whole session state, e.g. when an existing record is
// opened for edit.
type Load struct{ Document Document }

func (c Load) apply(d *Document) error {
	*d = c.Document.Clone()
	return nil
}

// ===== session =====

// Session owns one document edit. It is not safe for concurrent use; each
// open edit has its own.
type Session struct {
	doc Document
}

func NewSession(d Document) *Session {
	return &Session{doc: Recompute(d.Clone())}
}

func (s *Session) Dispatch(ch Change) error {
	next, err := Apply(s.doc, ch)
	if err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *Session) Document() Document { return s.doc.Clone() }

// Violations runs the commit gate against the current state.
func (s *Session) Violations() []string { return Validate(s.doc) }
