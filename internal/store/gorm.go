// internal/store/gorm.go
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcaportal/mca-backend/internal/database"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/utils"
)

// Store is the GORM/Postgres implementation of every store interface.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Application store

func (s *Store) NextSequence(year int) (int, error) {
	var seq int
	err := s.db.Raw(
		`INSERT INTO application_sequences (year, last_seq) VALUES (?, 1)
		 ON CONFLICT (year) DO UPDATE SET last_seq = application_sequences.last_seq + 1
		 RETURNING last_seq`, year).Scan(&seq).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance application sequence: %w", err)
	}
	return seq, nil
}

func (s *Store) CreateApplication(app *models.Application) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("failed to create application: %w", err)
		}
		return nil
	})
}

func (s *Store) GetApplication(id string) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Submissions", orderByCreation).
		Preload("Documents").
		Preload("Client").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch application: %w", err)
	}
	return &app, nil
}

func (s *Store) ListApplicationsForClient(clientEmail string) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.
		Joins("JOIN clients ON clients.id = applications.client_id").
		Where("clients.email = ?", clientEmail).
		Preload("Submissions", orderByCreation).
		Preload("Documents").
		Order("applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications for client: %w", err)
	}
	return apps, nil
}

func (s *Store) ListApplications(params utils.PaginationParams) ([]models.Application, int64, error) {
	query := s.db.Model(&models.Application{}).
		Preload("Submissions", orderByCreation).
		Preload("Client")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.
			Joins("JOIN clients ON clients.id = applications.client_id").
			Where("applications.id ILIKE ? OR clients.name ILIKE ? OR clients.company ILIKE ?",
				pattern, pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("applications.status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	allowedSortFields := []string{"created_at", "submitted_date", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var apps []models.Application
	if err := query.Find(&apps).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return apps, total, nil
}

func (s *Store) CreateSubmissions(appID string, subs []models.LenderSubmission) error {
	if len(subs) == 0 {
		return nil
	}
	for i := range subs {
		subs[i].ApplicationID = appID
	}
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(&subs).Error; err != nil {
			return fmt.Errorf("failed to create lender submissions: %w", err)
		}
		return nil
	})
}

func (s *Store) UpdateSubmission(appID, lenderID string, upd SubmissionUpdate) (*models.LenderSubmission, error) {
	updates := map[string]interface{}{
		"status":       upd.Status,
		"updated_date": upd.UpdatedDate,
	}
	if upd.ApprovalAmount != nil {
		updates["approval_amount"] = *upd.ApprovalAmount
	}
	if upd.LenderEmail != nil {
		updates["lender_email"] = *upd.LenderEmail
	}
	if upd.LenderPhone != nil {
		updates["lender_phone"] = *upd.LenderPhone
	}
	if upd.Notes != nil {
		updates["notes"] = *upd.Notes
	}

	res := s.db.Model(&models.LenderSubmission{}).
		Where("application_id = ? AND lender_id = ?", appID, lenderID).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update lender submission: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var sub models.LenderSubmission
	if err := s.db.First(&sub, "application_id = ? AND lender_id = ?", appID, lenderID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload lender submission: %w", err)
	}
	return &sub, nil
}

func (s *Store) UpdateApplicationStatus(appID string, status models.ApplicationStatus) error {
	res := s.db.Model(&models.Application{}).
		Where("id = ?", appID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ApplicationStats() (*ApplicationStats, error) {
	stats := &ApplicationStats{}

	rows := []struct {
		Status models.ApplicationStatus
		Count  int64
	}{}
	err := s.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications by status: %w", err)
	}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.SubmissionStatusUnderReview:
			stats.UnderReview = row.Count
		case models.SubmissionStatusApproved:
			stats.Approved = row.Count
		case models.SubmissionStatusDeclined:
			stats.Declined = row.Count
		case models.SubmissionStatusFunded:
			stats.Funded = row.Count
		}
	}

	err = s.db.Model(&models.Application{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRequested).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum requested amounts: %w", err)
	}

	err = s.db.Model(&models.LenderSubmission{}).
		Select("COALESCE(SUM(approval_amount), 0)").
		Where("status IN ?", []models.SubmissionStatus{
			models.SubmissionStatusApproved,
			models.SubmissionStatusFunded,
		}).
		Scan(&stats.TotalApproved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum approval amounts: %w", err)
	}

	return stats, nil
}

// Lender store

func (s *Store) ListLenders() ([]models.Lender, error) {
	var lenders []models.Lender
	if err := s.db.Order("name ASC").Find(&lenders).Error; err != nil {
		return nil, fmt.Errorf("failed to list lenders: %w", err)
	}
	return lenders, nil
}

func (s *Store) GetLender(id string) (*models.Lender, error) {
	var lender models.Lender
	if err := s.db.First(&lender, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch lender: %w", err)
	}
	return &lender, nil
}

func (s *Store) CreateLender(l *models.Lender) error {
	if err := s.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create lender: %w", err)
	}
	return nil
}

func (s *Store) UpdateLender(l *models.Lender) error {
	if err := s.db.Save(l).Error; err != nil {
		return fmt.Errorf("failed to update lender: %w", err)
	}
	return nil
}

// DeleteLender removes the directory entry only. Existing submissions keep
// their denormalized lender id and name.
func (s *Store) DeleteLender(id string) error {
	res := s.db.Delete(&models.Lender{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lender: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Client store

func (s *Store) CreateClient(c *models.Client) error {
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

func (s *Store) GetClientByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

func (s *Store) ListClients(params utils.PaginationParams) ([]models.Client, int64, error) {
	query := s.db.Model(&models.Client{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "email", "company"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, total, nil
}

func (s *Store) UpdateClient(c *models.Client) error {
	if err := s.db.Save(c).Error; err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

func (s *Store) DeleteClient(id uuid.UUID) error {
	res := s.db.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Admin store

func (s *Store) CreateAdmin(a *models.AdminUser) error {
	if err := s.db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}

func (s *Store) GetAdmin(id uuid.UUID) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	return &admin, nil
}

func (s *Store) GetAdminByEmail(email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin user: %w", err)
	}
	return &admin, nil
}

func (s *Store) TouchAdminLogin(id uuid.UUID, at time.Time) error {
	return s.db.Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

// Document store

func (s *Store) GetDocument(appID string, docType models.DocumentType) (*models.Document, error) {
	var doc models.Document
	err := s.db.First(&doc, "application_id = ? AND document_type = ?", appID, docType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

func (s *Store) UpdateDocument(d *models.Document) error {
	if err := s.db.Save(d).Error; err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
