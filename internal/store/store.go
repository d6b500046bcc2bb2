// internal/store/store.go
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/utils"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SubmissionUpdate carries an administrator's write to one lender submission.
// Pointer fields are applied only when set; Status and UpdatedDate are always
// written.
type SubmissionUpdate struct {
	Status         models.SubmissionStatus
	ApprovalAmount *int64
	LenderEmail    *string
	LenderPhone    *string
	Notes          *string
	UpdatedDate    time.Time
}

// ApplicationStore is the persistence contract the application workflow runs
// against. The portal core never touches ambient state; everything goes
// through this interface.
type ApplicationStore interface {
	// NextSequence atomically advances and returns the per-year sequence
	// backing application IDs. Values are monotonic and never reused.
	NextSequence(year int) (int, error)

	// CreateApplication persists the application together with its
	// submissions and document rows in one transaction.
	CreateApplication(app *models.Application) error

	GetApplication(id string) (*models.Application, error)
	ListApplicationsForClient(clientEmail string) ([]models.Application, error)
	ListApplications(params utils.PaginationParams) ([]models.Application, int64, error)

	// CreateSubmissions appends new submissions to an existing application.
	// Either all records are written or none are.
	CreateSubmissions(appID string, subs []models.LenderSubmission) error

	UpdateSubmission(appID, lenderID string, upd SubmissionUpdate) (*models.LenderSubmission, error)
	UpdateApplicationStatus(appID string, status models.ApplicationStatus) error

	// ApplicationStats aggregates counts and dollar totals for the admin
	// dashboard.
	ApplicationStats() (*ApplicationStats, error)
}

// ApplicationStats is the admin dashboard rollup. TotalApproved sums
// approval amounts over approved and funded submissions, with missing
// amounts counted as zero.
type ApplicationStats struct {
	Total          int64 `json:"total"`
	UnderReview    int64 `json:"under_review"`
	Approved       int64 `json:"approved"`
	Declined       int64 `json:"declined"`
	Funded         int64 `json:"funded"`
	TotalRequested int64 `json:"total_requested"`
	TotalApproved  int64 `json:"total_approved"`
}

type LenderStore interface {
	ListLenders() ([]models.Lender, error)
	GetLender(id string) (*models.Lender, error)
	CreateLender(l *models.Lender) error
	UpdateLender(l *models.Lender) error
	DeleteLender(id string) error
}

type ClientStore interface {
	CreateClient(c *models.Client) error
	GetClient(id uuid.UUID) (*models.Client, error)
	GetClientByEmail(email string) (*models.Client, error)
	ListClients(params utils.PaginationParams) ([]models.Client, int64, error)
	UpdateClient(c *models.Client) error
	DeleteClient(id uuid.UUID) error
}

type AdminStore interface {
	CreateAdmin(a *models.AdminUser) error
	GetAdmin(id uuid.UUID) (*models.AdminUser, error)
	GetAdminByEmail(email string) (*models.AdminUser, error)
	TouchAdminLogin(id uuid.UUID, at time.Time) error
}

type DocumentStore interface {
	GetDocument(appID string, docType models.DocumentType) (*models.Document, error)
	UpdateDocument(d *models.Document) error
}
