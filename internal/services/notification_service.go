// internal/services/notification_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/models"
)

const (
	EventSubmissionCreated = "submission_created"
	EventStatusUpdated     = "status_updated"
)

// SubmissionEvent is the payload delivered to the external workflow endpoint
// for every submission-creation and status-update event.
type SubmissionEvent struct {
	Event           string    `json:"event"`
	SubmissionID    string    `json:"submissionId"`
	ApplicationID   string    `json:"applicationId"`
	LenderID        string    `json:"lenderId"`
	LenderName      string    `json:"lenderName"`
	Status          string    `json:"status"`
	ApprovalAmount  *int64    `json:"approvalAmount"`
	LenderEmail     string    `json:"lenderEmail,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	Company         string    `json:"company"`
	RequestedAmount int64     `json:"requestedAmount"`
	Timestamp       time.Time `json:"timestamp"`
}

// Notifier is the outbound event contract the workflow services call.
// Delivery is best effort; implementations must never block or fail the
// triggering operation.
type Notifier interface {
	SubmissionsCreated(app *models.Application, subs []models.LenderSubmission)
	SubmissionUpdated(app *models.Application, sub *models.LenderSubmission)
}

// NotificationService posts submission events to the configured webhook.
type NotificationService struct {
	config *config.Config
	client *http.Client
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *NotificationService) SubmissionsCreated(app *models.Application, subs []models.LenderSubmission) {
	for i := range subs {
		event := s.buildEvent(EventSubmissionCreated, app, &subs[i])
		go s.deliverLogged(event)
	}
}

func (s *NotificationService) SubmissionUpdated(app *models.Application, sub *models.LenderSubmission) {
	event := s.buildEvent(EventStatusUpdated, app, sub)
	go s.deliverLogged(event)
}

// Deliver posts one event synchronously. Exposed so the dispatch path is
// testable; production callers go through the async Notifier methods.
func (s *NotificationService) Deliver(event SubmissionEvent) error {
	if s.config.Webhook.URL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := s.client.Post(s.config.Webhook.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *NotificationService) deliverLogged(event SubmissionEvent) {
	if err := s.Deliver(event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event":          event.Event,
			"application_id": event.ApplicationID,
			"lender_id":      event.LenderID,
		}).Error("Failed to deliver webhook notification")
	}
}

func (s *NotificationService) buildEvent(eventType string, app *models.Application, sub *models.LenderSubmission) SubmissionEvent {
	event := SubmissionEvent{
		Event:           eventType,
		SubmissionID:    sub.ID.String(),
		ApplicationID:   app.ID,
		LenderID:        sub.LenderID,
		LenderName:      sub.LenderName,
		Status:          string(sub.Status),
		ApprovalAmount:  sub.ApprovalAmount,
		LenderEmail:     sub.LenderEmail,
		Notes:           sub.Notes,
		RequestedAmount: app.Amount,
		Timestamp:       time.Now().UTC(),
	}
	if app.Client != nil {
		event.ClientName = app.Client.Name
		event.ClientEmail = app.Client.Email
		event.Company = app.Client.Company
	}
	return event
}
