package profile

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents one investor profile record created when a purchase
// cleared KYC. Identity numbers are stored as entered; the verification
// outcome is a single flag because profiles are only created for parties
// whose documents already passed.
type Profile struct {
	gorm.Model
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectID      string    `gorm:"type:varchar(64);index"`
	Role           string    `gorm:"type:varchar(16);not null"`
	Surname        string
	Name           string
	DOB            string `gorm:"type:varchar(10)"`
	Email          string
	Phone          string `gorm:"type:varchar(10)"`
	Street         string
	City           string
	Occupation     string
	AnnualIncome   string `gorm:"type:varchar(32)"`
	UserType       string `gorm:"type:varchar(16);not null"`
	PANNumber      string `gorm:"type:varchar(10)"`
	AadhaarNumber  string `gorm:"type:varchar(12)"`
	GSTNumber      string `gorm:"type:varchar(15)"`
	PassportNumber string `gorm:"type:varchar(8)"`
	AccountNumber  string `gorm:"type:varchar(18)"`
	IFSCCode       string `gorm:"type:varchar(11)"`
	Verified       bool
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}
