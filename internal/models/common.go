// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums

// SubmissionStatus is the status a lender has assigned to one submission.
// The same values double as the application-level overall status.
type SubmissionStatus string

const (
	SubmissionStatusUnderReview SubmissionStatus = "under_review"
	SubmissionStatusApproved    SubmissionStatus = "approved"
	SubmissionStatusDeclined    SubmissionStatus = "declined"
	SubmissionStatusFunded      SubmissionStatus = "funded"
)

// ApplicationStatus is the overall status derived from all lender submissions.
type ApplicationStatus = SubmissionStatus

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusUnderReview, SubmissionStatusApproved,
		SubmissionStatusDeclined, SubmissionStatusFunded:
		return true
	}
	return false
}

type DocumentType string

const (
	DocumentTypeFundingApplication DocumentType = "funding_application"
	DocumentTypeBankStatement1     DocumentType = "bank_statement_1"
	DocumentTypeBankStatement2     DocumentType = "bank_statement_2"
	DocumentTypeBankStatement3     DocumentType = "bank_statement_3"
)

func (d DocumentType) Valid() bool {
	for _, t := range DocumentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// DocumentTypes lists the four slots every application must fill.
var DocumentTypes = []DocumentType{
	DocumentTypeFundingApplication,
	DocumentTypeBankStatement1,
	DocumentTypeBankStatement2,
	DocumentTypeBankStatement3,
}

type UserType string

const (
	UserTypeClient UserType = "client"
	UserTypeAdmin  UserType = "admin"
)

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)
