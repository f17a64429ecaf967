package models

import (
	"time"

	"go-bizops-dashboard/engine"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OfferLetter struct {
	ID            uint   `gorm:"primaryKey"                   json:"id"`
	PublicID      string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	Number        string `gorm:"size:40;uniqueIndex;not null" json:"number"`
	NumberSeq     uint   `gorm:"not null;default:0"           json:"-"`
	BusinessID    *uint  `gorm:"index"                        json:"business_id"`
	CandidateName string `gorm:"size:180;not null"            json:"candidate_name"`
	Designation   string `gorm:"size:120;not null"            json:"designation"`
	Department    string `gorm:"size:120"                     json:"department"`

	JoiningDate datatypes.Date     `json:"joining_date"`
	Mode        engine.PackageMode `gorm:"size:10;not null" json:"mode"`

	Basic          engine.Money     `gorm:"not null;default:0" json:"basic"`
	HRA            engine.Money     `gorm:"column:hra;not null;default:0" json:"hra"`
	Incentives     engine.Money     `gorm:"not null;default:0" json:"incentives"`
	Allowances     []OfferAllowance `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"allowances"`
	PF             engine.Money     `gorm:"column:pf;not null;default:0" json:"pf"`
	ESI            engine.Money     `gorm:"column:esi;not null;default:0" json:"esi"`
	TaxDeduction   engine.Money     `gorm:"not null;default:0" json:"tax_deduction"`
	OtherDeduction engine.Money     `gorm:"not null;default:0" json:"other_deduction"`
	Gross          engine.Money     `gorm:"not null;default:0" json:"gross"`
	Net            engine.Money     `gorm:"not null;default:0" json:"net"`
	StructureCTC   engine.Money     `gorm:"column:structure_ctc;not null;default:0" json:"structure_ctc"`

	PackageMonthly engine.Money `gorm:"not null;default:0" json:"package_monthly"`
	PackageCTC     engine.Money `gorm:"column:package_ctc;not null;default:0" json:"package_ctc"`

	Terms string `gorm:"type:text" json:"terms"`

	CreatedByID uint      `gorm:"index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (o *OfferLetter) BeforeCreate(tx *gorm.DB) error {
	if o.PublicID == "" {
		o.PublicID = uuid.NewString()
	}
	return nil
}

type OfferAllowance struct {
	ID            uint         `gorm:"primaryKey"     json:"id"`
	OfferLetterID uint         `gorm:"index;not null" json:"offer_letter_id"`
	Position      int          `gorm:"not null"       json:"position"`
	Name          string       `gorm:"size:120"       json:"name"`
	Amount        engine.Money `gorm:"not null"       json:"amount"`
}
