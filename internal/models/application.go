// internal/models/application.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Application is one funding application a client has submitted to a set of
// lenders. The ID is human-facing (APP-<year>-<seq>) and allocated from a
// per-year sequence; it is never reused or renumbered.
type Application struct {
	ID            string            `json:"id" gorm:"primaryKey;size:16"`
	ClientID      uuid.UUID         `json:"client_id" gorm:"type:uuid;not null;index"`
	Amount        int64             `json:"amount" gorm:"not null"`
	Status        ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'under_review'"`
	SubmittedDate time.Time         `json:"submitted_date" gorm:"not null"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	// Relationships
	Client      *Client            `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Submissions []LenderSubmission `json:"lender_submissions,omitempty" gorm:"foreignKey:ApplicationID"`
	Documents   []Document         `json:"documents,omitempty" gorm:"foreignKey:ApplicationID"`
}

// FormatApplicationID renders the year-scoped sequence as APP-2024-001.
func FormatApplicationID(year, seq int) string {
	return fmt.Sprintf("APP-%d-%03d", year, seq)
}

// LenderSubmission is one lender's response to one application. The lender
// name is a denormalized copy captured at submission time, so deleting the
// lender later leaves history intact.
type LenderSubmission struct {
	BaseModel
	ApplicationID  string           `json:"application_id" gorm:"size:16;not null;uniqueIndex:idx_submissions_app_lender"`
	LenderID       string           `json:"lender_id" gorm:"size:64;not null;uniqueIndex:idx_submissions_app_lender"`
	LenderName     string           `json:"lender_name" gorm:"size:255;not null"`
	Status         SubmissionStatus `json:"status" gorm:"type:varchar(20);not null;default:'under_review'"`
	ApprovalAmount *int64           `json:"approval_amount,omitempty"`
	LenderEmail    string           `json:"lender_email,omitempty" gorm:"size:255"`
	LenderPhone    string           `json:"lender_phone,omitempty" gorm:"size:50"`
	Notes          string           `json:"notes,omitempty" gorm:"type:text"`
	UpdatedDate    *time.Time       `json:"updated_date,omitempty"`
}

// ApprovedAmount returns the approval amount, treating a missing value as
// zero for financial reporting.
func (s *LenderSubmission) ApprovedAmount() int64 {
	if s.ApprovalAmount == nil {
		return 0
	}
	return *s.ApprovalAmount
}

// Document is metadata for one of the four required upload slots. File bytes
// live in external storage; only the reference is kept here.
type Document struct {
	BaseModel
	ApplicationID string       `json:"application_id" gorm:"size:16;not null;index"`
	DocumentType  DocumentType `json:"document_type" gorm:"type:varchar(40);not null"`
	FileName      string       `json:"file_name" gorm:"size:255;not null"`
	StorageKey    string       `json:"storage_key,omitempty" gorm:"size:512"`
	FileHash      string       `json:"file_hash,omitempty" gorm:"size:64"`
}

// ApplicationSequence backs the year-scoped, monotonic application ID
// allocation.
type ApplicationSequence struct {
	Year    int `gorm:"primaryKey"`
	LastSeq int `gorm:"not null"`
}

// DeriveApplicationStatus maps the multiset of submission statuses onto one
// overall application status:
//
//	funded is sticky: once the application (or any submission) is funded the
//	result stays funded, regardless of later changes to other submissions;
//	otherwise any approved submission makes the application approved;
//	otherwise all-declined (with at least one submission) means declined;
//	anything else, including an empty set, stays under_review.
//
// The result depends only on the statuses present, never on their order. The
// function is pure; callers persist the result.
func DeriveApplicationStatus(subs []LenderSubmission, previous ApplicationStatus) ApplicationStatus {
	if previous == SubmissionStatusFunded {
		return SubmissionStatusFunded
	}

	anyApproved := false
	allDeclined := len(subs) > 0

	for i := range subs {
		switch subs[i].Status {
		case SubmissionStatusFunded:
			return SubmissionStatusFunded
		case SubmissionStatusApproved:
			anyApproved = true
			allDeclined = false
		case SubmissionStatusDeclined:
		default:
			allDeclined = false
		}
	}

	if anyApproved {
		return SubmissionStatusApproved
	}
	if allDeclined {
		return SubmissionStatusDeclined
	}
	return SubmissionStatusUnderReview
}
