package dto

import (
	"time"

	"github.com/google/uuid"
)

// ProfileCreate is a DTO for creating one investor profile from a KYC-cleared
// account. One call is made per party, primary first.
type ProfileCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	ProjectID      string
	Role           string
	Surname        string
	Name           string
	DOB            string
	Email          string
	Phone          string
	Street         string
	City           string
	Occupation     string
	AnnualIncome   string
	UserType       string
	PANNumber      string
	AadhaarNumber  string
	GSTNumber      string
	PassportNumber string
	AccountNumber  string
	IFSCCode       string
	Verified       bool
}

// ProfileRead is a read-optimized DTO for profile listings, including the
// existing-profiles fast path check.
type ProfileRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Role      string
	Surname   string
	Name      string
	UserType  string
	Verified  bool
	CreatedAt time.Time
}
