package service

import (
	"errors"
	"fmt"
	"strings"

	"go-bizops-dashboard/engine"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrCatalogNotFound   = errors.New("catalog item not found")
	ErrTermsNotFound     = errors.New("terms template not found")
	ErrBusinessNotFound  = errors.New("business not found")
	ErrNotDeletable      = errors.New("only DRAFT or CANCELLED invoices can be deleted")
	ErrTotalsMismatch    = errors.New("client totals do not match the computed totals")
	ErrValidation        = errors.New("document is incomplete")
	ErrOverpayment       = errors.New("payment exceeds the outstanding balance")
	ErrPaymentNotAllowed = errors.New("payments cannot be recorded on a cancelled invoice")
	ErrAlreadyConverted  = errors.New("quotation has already been converted")
	ErrBadDate           = errors.New("invalid date, expected YYYY-MM-DD")

	errUniqueViolation = errors.New("unique_violation")
)

// ValidationError lists the fields that block a commit.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MismatchError carries the server-side figures when the client's differ.
type MismatchError struct {
	Computed engine.Document
}

func (e *MismatchError) Error() string { return ErrTotalsMismatch.Error() }

func (e *MismatchError) Unwrap() error { return ErrTotalsMismatch }

// wrapCreate tags unique-key conflicts so the caller can retry with a fresh
// document number.
func wrapCreate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %v", errUniqueViolation, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", errUniqueViolation, err)
	}
	return err
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
