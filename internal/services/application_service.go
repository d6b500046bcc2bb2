// internal/services/application_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrSubmissionNotFound  = errors.New("lender submission not found")
	ErrNotApplicationOwner = errors.New("not authorized to access this application")
	ErrNoNewLenders        = errors.New("all selected lenders have already received this application")
	ErrDuplicateLender     = errors.New("lender selected more than once")
)

// ApplicationService owns the funding-application workflow: first submission,
// waterfall resubmission to additional lenders, and administrator updates to
// per-lender outcomes with overall-status aggregation.
type ApplicationService struct {
	apps     store.ApplicationStore
	lenders  *LenderService
	notifier Notifier
}

type SubmitApplicationRequest struct {
	Amount    int64       `json:"amount" validate:"required,gt=0"`
	LenderIDs []string    `json:"lender_ids" validate:"required,min=1,dive,lender_slug"`
	Documents DocumentSet `json:"documents"`
}

// DocumentSet names the four required upload slots. Only metadata travels
// through this service; file bytes are handled by the storage service.
type DocumentSet struct {
	FundingApplication string `json:"funding_application" validate:"required"`
	BankStatement1     string `json:"bank_statement_1" validate:"required"`
	BankStatement2     string `json:"bank_statement_2" validate:"required"`
	BankStatement3     string `json:"bank_statement_3" validate:"required"`
}

type ResubmitApplicationRequest struct {
	LenderIDs []string `json:"lender_ids" validate:"required,min=1,dive,lender_slug"`
}

type UpdateSubmissionRequest struct {
	Status         string  `json:"status" validate:"required,submission_status"`
	ApprovalAmount *int64  `json:"approval_amount,omitempty" validate:"omitempty,gte=0"`
	LenderEmail    *string `json:"lender_email,omitempty" validate:"omitempty,email"`
	LenderPhone    *string `json:"lender_phone,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func NewApplicationService(apps store.ApplicationStore, lenders *LenderService, notifier Notifier) *ApplicationService {
	return &ApplicationService{
		apps:     apps,
		lenders:  lenders,
		notifier: notifier,
	}
}

// Submit creates a new application for the client: a fresh year-scoped ID,
// one under_review submission per selected lender, and the four document
// metadata rows, all in one write. A failed attempt never reuses its ID.
func (s *ApplicationService) Submit(client *models.Client, req *SubmitApplicationRequest) (*models.Application, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lenderIDs, err := uniqueLenderIDs(req.LenderIDs)
	if err != nil {
		return nil, err
	}

	subs := make([]models.LenderSubmission, 0, len(lenderIDs))
	for _, id := range lenderIDs {
		lender, err := s.lenders.ResolveLender(id)
		if err != nil {
			return nil, fmt.Errorf("lender %s: %w", id, err)
		}
		subs = append(subs, models.LenderSubmission{
			LenderID:   lender.ID,
			LenderName: lender.Name,
			Status:     models.SubmissionStatusUnderReview,
		})
	}

	now := time.Now().UTC()
	seq, err := s.apps.NextSequence(now.Year())
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		ID:            models.FormatApplicationID(now.Year(), seq),
		ClientID:      client.ID,
		Amount:        req.Amount,
		Status:        models.SubmissionStatusUnderReview,
		SubmittedDate: dateOf(now),
		Client:        client,
		Submissions:   subs,
		Documents:     documentRows(req.Documents),
	}

	if err := s.apps.CreateApplication(app); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.SubmissionsCreated(app, app.Submissions)
	}
	return app, nil
}

// Resubmit waterfalls an existing application to additional lenders. Lenders
// already targeted are filtered out server-side regardless of what the
// selection UI sent; when nothing remains the call fails and no records are
// written. Existing submissions and the requested amount are never touched.
func (s *ApplicationService) Resubmit(appID, clientEmail string, req *ResubmitApplicationRequest) ([]models.LenderSubmission, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	app, err := s.getOwned(appID, clientEmail)
	if err != nil {
		return nil, err
	}

	lenderIDs, err := uniqueLenderIDs(req.LenderIDs)
	if err != nil {
		return nil, err
	}

	targeted := make(map[string]bool, len(app.Submissions))
	for _, sub := range app.Submissions {
		targeted[sub.LenderID] = true
	}

	subs := make([]models.LenderSubmission, 0, len(lenderIDs))
	for _, id := range lenderIDs {
		if targeted[id] {
			continue
		}
		lender, err := s.lenders.ResolveLender(id)
		if err != nil {
			return nil, fmt.Errorf("lender %s: %w", id, err)
		}
		subs = append(subs, models.LenderSubmission{
			ApplicationID: appID,
			LenderID:      lender.ID,
			LenderName:    lender.Name,
			Status:        models.SubmissionStatusUnderReview,
		})
	}

	if len(subs) == 0 {
		return nil, ErrNoNewLenders
	}

	if err := s.apps.CreateSubmissions(appID, subs); err != nil {
		return nil, err
	}

	// New under_review submissions can move an all-declined application back
	// to under_review; funded stays funded.
	all := append(append([]models.LenderSubmission{}, app.Submissions...), subs...)
	derived := models.DeriveApplicationStatus(all, app.Status)
	if derived != app.Status {
		if err := s.apps.UpdateApplicationStatus(appID, derived); err != nil {
			return nil, err
		}
	}

	if s.notifier != nil {
		s.notifier.SubmissionsCreated(app, subs)
	}
	return subs, nil
}

// UpdateSubmission applies an administrator's write to one lender submission,
// stamps the update date server-side, and recomputes + persists the overall
// application status. Any state may move to any other state.
func (s *ApplicationService) UpdateSubmission(appID, lenderID string, req *UpdateSubmissionRequest) (*models.LenderSubmission, models.ApplicationStatus, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", fmt.Errorf("validation failed: %w", err)
	}

	app, err := s.apps.GetApplication(appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrApplicationNotFound
		}
		return nil, "", err
	}

	upd := store.SubmissionUpdate{
		Status:         models.SubmissionStatus(req.Status),
		ApprovalAmount: req.ApprovalAmount,
		LenderEmail:    req.LenderEmail,
		LenderPhone:    req.LenderPhone,
		Notes:          req.Notes,
		UpdatedDate:    dateOf(time.Now().UTC()),
	}

	sub, err := s.apps.UpdateSubmission(appID, lenderID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrSubmissionNotFound
		}
		return nil, "", err
	}

	// Recompute against the full, post-write submission set.
	refreshed, err := s.apps.GetApplication(appID)
	if err != nil {
		return nil, "", err
	}
	derived := models.DeriveApplicationStatus(refreshed.Submissions, app.Status)
	if err := s.apps.UpdateApplicationStatus(appID, derived); err != nil {
		return nil, "", err
	}

	if s.notifier != nil {
		refreshed.Status = derived
		s.notifier.SubmissionUpdated(refreshed, sub)
	}
	return sub, derived, nil
}

// GetApplication returns one application. When clientEmail is non-empty the
// caller must own the application; admins pass an empty string.
func (s *ApplicationService) GetApplication(appID, clientEmail string) (*models.Application, error) {
	return s.getOwned(appID, clientEmail)
}

func (s *ApplicationService) ListApplicationsForClient(clientEmail string) ([]models.Application, error) {
	return s.apps.ListApplicationsForClient(clientEmail)
}

func (s *ApplicationService) ListApplications(params utils.PaginationParams) ([]models.Application, int64, error) {
	return s.apps.ListApplications(params)
}

func (s *ApplicationService) getOwned(appID, clientEmail string) (*models.Application, error) {
	app, err := s.apps.GetApplication(appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if clientEmail != "" {
		if app.Client == nil || app.Client.Email != clientEmail {
			return nil, ErrNotApplicationOwner
		}
	}
	return app, nil
}

func uniqueLenderIDs(ids []string) ([]string, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("lender %s: %w", id, ErrDuplicateLender)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func documentRows(docs DocumentSet) []models.Document {
	return []models.Document{
		{DocumentType: models.DocumentTypeFundingApplication, FileName: docs.FundingApplication},
		{DocumentType: models.DocumentTypeBankStatement1, FileName: docs.BankStatement1},
		{DocumentType: models.DocumentTypeBankStatement2, FileName: docs.BankStatement2},
		{DocumentType: models.DocumentTypeBankStatement3, FileName: docs.BankStatement3},
	}
}

// dateOf truncates to a calendar date; submission and update dates carry no
// time-of-day component.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
