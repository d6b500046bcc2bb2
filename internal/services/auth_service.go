// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// AuthService verifies credentials against stored bcrypt hashes and issues
// JWT sessions. There are no bypasses: every login checks a real hash.
type AuthService struct {
	clients store.ClientStore
	admins  store.AdminStore
	config  *config.Config
}

type RegisterClientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
	Company  string `json:"company" validate:"omitempty,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewAuthService(clients store.ClientStore, admins store.AdminStore, cfg *config.Config) *AuthService {
	return &AuthService{
		clients: clients,
		admins:  admins,
		config:  cfg,
	}
}

func (s *AuthService) RegisterClient(req *RegisterClientRequest) (*models.Client, *TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.clients.GetClientByEmail(req.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, err
	}

	client := &models.Client{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
	}
	if err := client.SetPassword(req.Password); err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.clients.CreateClient(client); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(client.ID, client.Email, client.Name, string(models.UserTypeClient))
	if err != nil {
		return nil, nil, err
	}
	return client, tokens, nil
}

func (s *AuthService) LoginClient(req *LoginRequest) (*models.Client, *TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	client, err := s.clients.GetClientByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := client.CheckPassword(req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(client.ID, client.Email, client.Name, string(models.UserTypeClient))
	if err != nil {
		return nil, nil, err
	}
	return client, tokens, nil
}

func (s *AuthService) LoginAdmin(req *LoginRequest) (*models.AdminUser, *TokenPair, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	admin, err := s.admins.GetAdminByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.admins.TouchAdminLogin(admin.ID, time.Now().UTC()); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(admin.ID, admin.Email, admin.Name, string(models.UserTypeAdmin))
	if err != nil {
		return nil, nil, err
	}
	return admin, tokens, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// subject is looked up as a client first, then as an admin.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	subject, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if client, err := s.clients.GetClient(id); err == nil {
		return utils.GenerateJWT(client.ID, client.Email, client.Name,
			string(models.UserTypeClient), s.config.JWT.AccessTokenTTL)
	}

	admin, err := s.admins.GetAdmin(id)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return utils.GenerateJWT(admin.ID, admin.Email, admin.Name,
		string(models.UserTypeAdmin), s.config.JWT.AccessTokenTTL)
}

// ClientByEmail loads the client profile behind an authenticated session.
func (s *AuthService) ClientByEmail(email string) (*models.Client, error) {
	client, err := s.clients.GetClientByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *AuthService) issueTokens(id uuid.UUID, email, name, userType string) (*TokenPair, error) {
	access, err := utils.GenerateJWT(id, email, name, userType, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(id, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
