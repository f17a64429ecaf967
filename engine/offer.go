package engine

import (
	"errors"
	"fmt"
	"time"
)

type PackageMode string

const (
	PackageStructure PackageMode = "STRUCTURE"
	PackageSimple    PackageMode = "SIMPLE"
)

var (
	ErrUnknownPackageMode = errors.New("unknown package mode")
	ErrNoSuchAllowance    = errors.New("no such allowance")
	ErrUnknownDeduction   = errors.New("unknown deduction")
)

// Offer is an offer letter in an edit session. Only the part selected by
// Mode is shown and counted; the other is kept so switching back loses
// nothing.
type Offer struct {
	CandidateName string          `json:"candidate_name"`
	Designation   string          `json:"designation"`
	Department    string          `json:"department"`
	JoiningDate   time.Time       `json:"joining_date"`
	Mode          PackageMode     `json:"mode"`
	Structure     SalaryStructure `json:"structure"`
	Package       SimplePackage   `json:"package"`
	Terms         string          `json:"terms"`
}

func NewOffer() Offer { return RecomputeOffer(Offer{Mode: PackageStructure}) }

// RecomputeOffer refreshes the salary structure. The simple package is kept
// consistent by its own edits (see SetMonthly and SetAnnualCTC), because
// which side was edited decides the rounding.
func RecomputeOffer(o Offer) Offer {
	if o.Mode == "" {
		o.Mode = PackageStructure
	}
	o.Structure = ComputeSalary(o.Structure)
	return o
}

// AnnualCTC for whichever mode is active.
func (o Offer) AnnualCTC() Money {
	if o.Mode == PackageSimple {
		return o.Package.AnnualCTC
	}
	return o.Structure.AnnualCTC
}

// MonthlyGross for whichever mode is active.
func (o Offer) MonthlyGross() Money {
	if o.Mode == PackageSimple {
		return o.Package.Monthly
	}
	return o.Structure.Gross
}

const (
	FieldCandidateName = "candidate_name"
	FieldDesignation   = "designation"
	FieldCompensation  = "compensation"
)

// ValidateOffer is the commit gate for offer letters.
func ValidateOffer(o Offer) []string {
	o = RecomputeOffer(o)
	var v []string
	if blank(o.CandidateName) {
		v = append(v, FieldCandidateName)
	}
	if blank(o.Designation) {
		v = append(v, FieldDesignation)
	}
	if o.MonthlyGross() <= 0 || !o.MonthlyGross().InRange() || !o.AnnualCTC().InRange() {
		v = append(v, FieldCompensation)
	}
	for i, a := range o.Structure.Allowances {
		if o.Mode == PackageStructure && blank(a.Name) && a.Amount > 0 {
			v = append(v, fmt.Sprintf("allowances[%d].name", i))
		}
	}
	return v
}

// ===== offer reducer =====

type OfferChange interface {
	applyOffer(o *Offer) error
}

// ApplyOffer mirrors Apply for offer letters.
func ApplyOffer(prior Offer, ch OfferChange) (Offer, error) {
	next := prior
	next.Structure.Allowances = append([]Allowance(nil), prior.Structure.Allowances...)
	if err := ch.applyOffer(&next); err != nil {
		return prior, err
	}
	return RecomputeOffer(next), nil
}

type SetBasic struct{ Raw string }

func (c SetBasic) applyOffer(o *Offer) error {
	o.Structure.Basic = ParseMoney(c.Raw).NonNegative()
	return nil
}

type SetHRA struct{ Raw string }

func (c SetHRA) applyOffer(o *Offer) error {
	o.Structure.HRA = ParseMoney(c.Raw).NonNegative()
	return nil
}

type SetIncentives struct{ Raw string }

func (c SetIncentives) applyOffer(o *Offer) error {
	o.Structure.Incentives = ParseMoney(c.Raw).NonNegative()
	return nil
}

type AddAllowance struct {
	Name string
	Raw  string
}

func (c AddAllowance) applyOffer(o *Offer) error {
	o.Structure.Allowances = append(o.Structure.Allowances, Allowance{
		Name:   c.Name,
		Amount: ParseMoney(c.Raw).NonNegative(),
	})
	return nil
}

type SetAllowance struct {
	Index int
	Name  string
	Raw   string
}

func (c SetAllowance) applyOffer(o *Offer) error {
	if c.Index < 0 || c.Index >= len(o.Structure.Allowances) {
		return fmt.Errorf("%w: index %d", ErrNoSuchAllowance, c.Index)
	}
	o.Structure.Allowances[c.Index] = Allowance{Name: c.Name, Amount: ParseMoney(c.Raw).NonNegative()}
	return nil
}

type RemoveAllowance struct{ Index int }

func (c RemoveAllowance) applyOffer(o *Offer) error {
	a := o.Structure.Allowances
	if c.Index < 0 || c.Index >= len(a) {
		return fmt.Errorf("%w: index %d", ErrNoSuchAllowance, c.Index)
	}
	o.Structure.Allowances = append(a[:c.Index], a[c.Index+1:]...)
	return nil
}

// SetDeduction edits one of pf, esi, tax, other.
type SetDeduction struct {
	Name string
	Raw  string
}

func (c SetDeduction) applyOffer(o *Offer) error {
	amt := ParseMoney(c.Raw).NonNegative()
	d := &o.Structure.Deductions
	switch c.Name {
	case "pf":
		d.PF = amt
	case "esi":
		d.ESI = amt
	case "tax":
		d.Tax = amt
	case "other":
		d.Other = amt
	default:
		return fmt.Errorf("%w %q", ErrUnknownDeduction, c.Name)
	}
	return nil
}

type SetPackageMode struct{ Mode PackageMode }

func (c SetPackageMode) applyOffer(o *Offer) error {
	if c.Mode != PackageStructure && c.Mode != PackageSimple {
		return fmt.Errorf("%w %q", ErrUnknownPackageMode, c.Mode)
	}
	o.Mode = c.Mode
	return nil
}

type SetMonthly struct{ Raw string }

func (c SetMonthly) applyOffer(o *Offer) error {
	o.Package = PackageFromMonthly(ParseMoney(c.Raw))
	return nil
}

type SetAnnualCTC struct{ Raw string }

func (c SetAnnualCTC) applyOffer(o *Offer) error {
	o.Package = PackageFromAnnual(ParseMoney(c.Raw))
	return nil
}

type SetCandidate struct {
	Name        string
	Designation string
	Department  string
	JoiningDate time.Time
}

func (c SetCandidate) applyOffer(o *Offer) error {
	o.CandidateName = c.Name
	o.Designation = c.Designation
	o.Department = c.Department
	o.JoiningDate = c.JoiningDate
	return nil
}

type SetOfferTerms struct{ Text string }

func (c SetOfferTerms) applyOffer(o *Offer) error {
	o.Terms = c.Text
	return nil
}
