// internal/handlers/document_test.go
package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/middleware"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/utils"
)

// Storage init failing at startup must not take the upload route down with a
// panic; the endpoint reports the outage instead.
func TestUploadWithStorageUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	apps := newMemAppStore()
	lenders := &memLenderStore{lenders: models.DefaultLenders()}

	client := &models.Client{BaseModel: models.BaseModel{ID: uuid.New()}, Email: "owner@example.com", Name: "Jane Doe"}

	lenderService := services.NewLenderService(lenders)
	appService := services.NewApplicationService(apps, lenderService, nil)

	app, err := appService.Submit(client, &services.SubmitApplicationRequest{
		Amount:    50000,
		LenderIDs: []string{"rapid-capital"},
		Documents: services.DocumentSet{
			FundingApplication: "funding-application.pdf",
			BankStatement1:     "statement-jan.pdf",
			BankStatement2:     "statement-feb.pdf",
			BankStatement3:     "statement-mar.pdf",
		},
	})
	require.NoError(t, err)

	// The router wires a nil storage service when NewStorageService fails.
	documentHandler := NewDocumentHandler(nil, appService)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/v1")
	applications := v1.Group("/applications")
	applications.Use(middleware.AuthRequired())
	applications.POST("/:id/documents/:type", documentHandler.Upload)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "funding-application.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	token, err := utils.GenerateJWT(client.ID, client.Email, client.Name, "client", 1)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", "/v1/applications/"+app.ID+"/documents/funding_application", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "STORAGE_UNAVAILABLE")
}

func TestUploadRejectsUnknownDocumentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	apps := newMemAppStore()
	lenders := &memLenderStore{lenders: models.DefaultLenders()}
	appService := services.NewApplicationService(apps, services.NewLenderService(lenders), nil)

	cfg := &config.Config{AWS: config.AWSConfig{}}
	storageService, err := services.NewStorageService(cfg, memDocStore{})
	require.NoError(t, err)

	documentHandler := NewDocumentHandler(storageService, appService)

	router := gin.New()
	router.POST("/v1/applications/:id/documents/:type", func(c *gin.Context) {
		c.Set("user_email", "owner@example.com")
		c.Set("user_type", "client")
	}, documentHandler.Upload)

	req, _ := http.NewRequest("POST", "/v1/applications/APP-2026-001/documents/tax_return", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// memDocStore satisfies the document lookup the storage service needs.
type memDocStore struct{}

func (memDocStore) GetDocument(appID string, docType models.DocumentType) (*models.Document, error) {
	return &models.Document{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		ApplicationID: appID,
		DocumentType:  docType,
	}, nil
}

func (memDocStore) UpdateDocument(d *models.Document) error { return nil }
