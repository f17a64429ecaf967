package engine

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

// Invoice statuses. UNPAID, PARTIAL and PAID are driven by payments; the rest
// only change on an explicit action.
const (
	InvoiceDraft     Status = "DRAFT"
	InvoiceSent      Status = "SENT"
	InvoiceUnpaid    Status = "UNPAID"
	InvoicePartial   Status = "PARTIAL"
	InvoicePaid      Status = "PAID"
	InvoiceCancelled Status = "CANCELLED"
)

// Quotation statuses. None of them is ever derived from amounts.
const (
	QuotationDraft    Status = "DRAFT"
	QuotationPending  Status = "PENDING"
	QuotationApproved Status = "APPROVED"
	QuotationRejected Status = "REJECTED"
)

var (
	ErrUnknownStatus        = errors.New("unknown status")
	ErrQuotationNotApproved = errors.New("quotation is not approved")
)

var (
	invoiceStatuses = map[Status]bool{
		InvoiceDraft: false, InvoiceSent: false, InvoiceCancelled: false,
		InvoiceUnpaid: true, InvoicePartial: true, InvoicePaid: true,
	}
	quotationStatuses = map[Status]bool{
		QuotationDraft: false, QuotationPending: false,
		QuotationApproved: false, QuotationRejected: false,
	}
)

// ParseStatus normalizes s and checks it belongs to kind.
func ParseStatus(kind Kind, s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.knows(st) {
		return "", fmt.Errorf("%w %q for %s", ErrUnknownStatus, s, kind)
	}
	return st, nil
}

func (k Kind) knows(s Status) bool {
	switch k {
	case KindInvoice:
		_, ok := invoiceStatuses[s]
		return ok
	case KindQuotation:
		_, ok := quotationStatuses[s]
		return ok
	}
	return false
}

// IsAuto reports whether s is recomputed from payment state. Unset counts as
// auto for invoices.
func (k Kind) IsAuto(s Status) bool {
	if k != KindInvoice {
		return false
	}
	return s == "" || invoiceStatuses[s]
}

// PaymentStatus maps paid amount and balance to an auto status. The order of
// the checks matters: nothing paid is UNPAID even on a zero-value invoice.
func PaymentStatus(t Totals) Status {
	switch {
	case t.PaidAmount == 0:
		return InvoiceUnpaid
	case t.Balance <= 0:
		return InvoicePaid
	default:
		return InvoicePartial
	}
}

// ResolveStatus is the recompute path. Manual statuses are returned as-is.
func ResolveStatus(kind Kind, current Status, t Totals) Status {
	switch kind {
	case KindInvoice:
		if kind.IsAuto(current) {
			return PaymentStatus(t)
		}
		return current
	case KindQuotation:
		if current == "" {
			return QuotationDraft
		}
		return current
	}
	return current
}

// Transition applies an explicit status change.
//
// Asking an invoice for any auto status hands it back to payment tracking:
// the result is whatever the payments say, so an unpaid invoice cannot be
// forced to PAID. Terminal statuses may be re-opened.
func Transition(kind Kind, current, target Status, t Totals) (Status, error) {
	if !kind.knows(target) {
		return current, fmt.Errorf("%w %q for %s", ErrUnknownStatus, target, kind)
	}
	if kind.IsAuto(target) {
		return PaymentStatus(t), nil
	}
	return target, nil
}

// IsTerminal reports statuses that no automatic path leaves.
func (k Kind) IsTerminal(s Status) bool {
	switch k {
	case KindInvoice:
		return s == InvoiceCancelled
	case KindQuotation:
		return s == QuotationApproved || s == QuotationRejected
	}
	return false
}

// CanConvert checks that a quotation may become an invoice.
func CanConvert(q Document) error {
	if q.Kind() != KindQuotation {
		return fmt.Errorf("%w: document is %s", ErrWrongKind, q.Kind())
	}
	if q.Status != QuotationApproved {
		return fmt.Errorf("%w: status is %s", ErrQuotationNotApproved, q.Status)
	}
	return nil
}
