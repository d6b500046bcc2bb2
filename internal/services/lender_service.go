// internal/services/lender_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

var ErrLenderNotFound = errors.New("lender not found")

type LenderService struct {
	lenders store.LenderStore
}

type CreateLenderRequest struct {
	ID           string   `json:"id" validate:"required,lender_slug"`
	Name         string   `json:"name" validate:"required,max=255"`
	Logo         string   `json:"logo" validate:"omitempty,max=8"`
	Description  string   `json:"description,omitempty"`
	Email        string   `json:"email" validate:"omitempty,email"`
	MinAmount    int64    `json:"min_amount" validate:"gte=0"`
	MaxAmount    int64    `json:"max_amount" validate:"gte=0"`
	TimeFrame    string   `json:"time_frame,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

type UpdateLenderRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Logo         *string  `json:"logo,omitempty" validate:"omitempty,max=8"`
	Description  *string  `json:"description,omitempty"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	MinAmount    *int64   `json:"min_amount,omitempty" validate:"omitempty,gte=0"`
	MaxAmount    *int64   `json:"max_amount,omitempty" validate:"omitempty,gte=0"`
	TimeFrame    *string  `json:"time_frame,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

func NewLenderService(lenders store.LenderStore) *LenderService {
	return &LenderService{lenders: lenders}
}

// ListLenders returns the directory. When the store is unreachable the
// built-in default list is served instead, so the submission flow keeps
// working in degraded mode.
func (s *LenderService) ListLenders() []models.Lender {
	lenders, err := s.lenders.ListLenders()
	if err != nil {
		logrus.WithError(err).Warn("Lender directory unavailable, serving built-in defaults")
		return models.DefaultLenders()
	}
	return lenders
}

// ResolveLender looks a lender up by id, falling back to the built-in list
// when the directory is unreachable. A lender missing from both is an error.
func (s *LenderService) ResolveLender(id string) (*models.Lender, error) {
	lender, err := s.lenders.GetLender(id)
	if err == nil {
		return lender, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrLenderNotFound
	}

	logrus.WithError(err).WithField("lender_id", id).
		Warn("Lender directory unavailable, resolving against built-in defaults")
	for _, fallback := range models.DefaultLenders() {
		if fallback.ID == id {
			l := fallback
			return &l, nil
		}
	}
	return nil, ErrLenderNotFound
}

func (s *LenderService) CreateLender(creatorID uuid.UUID, req *CreateLenderRequest) (*models.Lender, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.MinAmount > req.MaxAmount {
		return nil, errors.New("minimum amount cannot exceed maximum amount")
	}

	if _, err := s.lenders.GetLender(req.ID); err == nil {
		return nil, fmt.Errorf("lender %s already exists", req.ID)
	}

	lender := &models.Lender{
		ID:           req.ID,
		Name:         req.Name,
		Logo:         req.Logo,
		Description:  req.Description,
		Email:        req.Email,
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		TimeFrame:    req.TimeFrame,
		Requirements: pq.StringArray(req.Requirements),
		IsDefault:    false,
		CreatedBy:    &creatorID,
	}

	if err := s.lenders.CreateLender(lender); err != nil {
		return nil, err
	}
	return lender, nil
}

func (s *LenderService) UpdateLender(id string, req *UpdateLenderRequest) (*models.Lender, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lender, err := s.lenders.GetLender(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLenderNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		lender.Name = *req.Name
	}
	if req.Logo != nil {
		lender.Logo = *req.Logo
	}
	if req.Description != nil {
		lender.Description = *req.Description
	}
	if req.Email != nil {
		lender.Email = *req.Email
	}
	if req.MinAmount != nil {
		lender.MinAmount = *req.MinAmount
	}
	if req.MaxAmount != nil {
		lender.MaxAmount = *req.MaxAmount
	}
	if req.TimeFrame != nil {
		lender.TimeFrame = *req.TimeFrame
	}
	if req.Requirements != nil {
		lender.Requirements = pq.StringArray(req.Requirements)
	}

	if lender.MinAmount > lender.MaxAmount {
		return nil, errors.New("minimum amount cannot exceed maximum amount")
	}

	if err := s.lenders.UpdateLender(lender); err != nil {
		return nil, err
	}
	return lender, nil
}

// DeleteLender removes the directory entry. Submissions that already
// reference the lender keep their denormalized copy and are not touched.
func (s *LenderService) DeleteLender(id string) error {
	if err := s.lenders.DeleteLender(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLenderNotFound
		}
		return err
	}
	return nil
}
