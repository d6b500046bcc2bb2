// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

var ErrClientNotFound = errors.New("client not found")

// AdminService backs the staff dashboard: client management and portfolio
// statistics. Application and submission writes live on ApplicationService.
type AdminService struct {
	apps    store.ApplicationStore
	clients store.ClientStore
}

type CreateClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Company  string `json:"company" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255"`
}

func NewAdminService(apps store.ApplicationStore, clients store.ClientStore) *AdminService {
	return &AdminService{
		apps:    apps,
		clients: clients,
	}
}

func (s *AdminService) DashboardStats() (*store.ApplicationStats, error) {
	return s.apps.ApplicationStats()
}

func (s *AdminService) ListClients(params utils.PaginationParams) ([]models.Client, int64, error) {
	return s.clients.ListClients(params)
}

func (s *AdminService) CreateClient(req *CreateClientRequest) (*models.Client, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.clients.GetClientByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	client := &models.Client{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
	}
	if err := client.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.clients.CreateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *AdminService) UpdateClient(id uuid.UUID, req *UpdateClientRequest) (*models.Client, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	client, err := s.clients.GetClient(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Company != nil {
		client.Company = *req.Company
	}

	if err := s.clients.UpdateClient(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *AdminService) DeleteClient(id uuid.UUID) error {
	if err := s.clients.DeleteClient(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}
	return nil
}
