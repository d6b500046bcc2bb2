// internal/handlers/application_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcaportal/mca-backend/internal/config"
	"github.com/mcaportal/mca-backend/internal/middleware"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/store"
	"github.com/mcaportal/mca-backend/internal/utils"
)

// In-memory stores so the HTTP surface is tested without a database.

type memAppStore struct {
	seq  map[int]int
	apps map[string]*models.Application
}

func newMemAppStore() *memAppStore {
	return &memAppStore{seq: make(map[int]int), apps: make(map[string]*models.Application)}
}

func (m *memAppStore) NextSequence(year int) (int, error) {
	m.seq[year]++
	return m.seq[year], nil
}

func (m *memAppStore) CreateApplication(app *models.Application) error {
	for i := range app.Submissions {
		app.Submissions[i].ApplicationID = app.ID
	}
	m.apps[app.ID] = app
	return nil
}

func (m *memAppStore) GetApplication(id string) (*models.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return app, nil
}

func (m *memAppStore) ListApplicationsForClient(clientEmail string) ([]models.Application, error) {
	var out []models.Application
	for _, app := range m.apps {
		if app.Client != nil && app.Client.Email == clientEmail {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (m *memAppStore) ListApplications(params utils.PaginationParams) ([]models.Application, int64, error) {
	var out []models.Application
	for _, app := range m.apps {
		out = append(out, *app)
	}
	return out, int64(len(out)), nil
}

func (m *memAppStore) CreateSubmissions(appID string, subs []models.LenderSubmission) error {
	app, ok := m.apps[appID]
	if !ok {
		return store.ErrNotFound
	}
	app.Submissions = append(app.Submissions, subs...)
	return nil
}

func (m *memAppStore) UpdateSubmission(appID, lenderID string, upd store.SubmissionUpdate) (*models.LenderSubmission, error) {
	app, ok := m.apps[appID]
	if !ok {
		return nil, store.ErrNotFound
	}
	for i := range app.Submissions {
		sub := &app.Submissions[i]
		if sub.LenderID != lenderID {
			continue
		}
		sub.Status = upd.Status
		d := upd.UpdatedDate
		sub.UpdatedDate = &d
		if upd.ApprovalAmount != nil {
			sub.ApprovalAmount = upd.ApprovalAmount
		}
		out := *sub
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (m *memAppStore) UpdateApplicationStatus(appID string, status models.ApplicationStatus) error {
	app, ok := m.apps[appID]
	if !ok {
		return store.ErrNotFound
	}
	app.Status = status
	return nil
}

func (m *memAppStore) ApplicationStats() (*store.ApplicationStats, error) {
	return &store.ApplicationStats{Total: int64(len(m.apps))}, nil
}

type memLenderStore struct {
	lenders []models.Lender
}

func (m *memLenderStore) ListLenders() ([]models.Lender, error) { return m.lenders, nil }

func (m *memLenderStore) GetLender(id string) (*models.Lender, error) {
	for i := range m.lenders {
		if m.lenders[i].ID == id {
			return &m.lenders[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memLenderStore) CreateLender(l *models.Lender) error {
	m.lenders = append(m.lenders, *l)
	return nil
}
func (m *memLenderStore) UpdateLender(l *models.Lender) error { return nil }
func (m *memLenderStore) DeleteLender(id string) error        { return nil }

type memClientStore struct {
	clients map[string]*models.Client
}

func (m *memClientStore) CreateClient(c *models.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.clients[c.Email] = c
	return nil
}

func (m *memClientStore) GetClient(id uuid.UUID) (*models.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memClientStore) GetClientByEmail(email string) (*models.Client, error) {
	c, ok := m.clients[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (m *memClientStore) ListClients(params utils.PaginationParams) ([]models.Client, int64, error) {
	var out []models.Client
	for _, c := range m.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *memClientStore) UpdateClient(c *models.Client) error { return nil }
func (m *memClientStore) DeleteClient(id uuid.UUID) error     { return nil }

type memAdminStore struct {
	admins map[string]*models.AdminUser
}

func (m *memAdminStore) CreateAdmin(a *models.AdminUser) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.admins[a.Email] = a
	return nil
}

func (m *memAdminStore) GetAdmin(id uuid.UUID) (*models.AdminUser, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memAdminStore) GetAdminByEmail(email string) (*models.AdminUser, error) {
	a, ok := m.admins[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (m *memAdminStore) TouchAdminLogin(id uuid.UUID, at time.Time) error { return nil }

type ApplicationHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	apps        *memAppStore
	client      *models.Client
	otherClient *models.Client
	admin       *models.AdminUser
}

func (suite *ApplicationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret")

	suite.apps = newMemAppStore()
	clients := &memClientStore{clients: make(map[string]*models.Client)}
	admins := &memAdminStore{admins: make(map[string]*models.AdminUser)}
	lenders := &memLenderStore{lenders: models.DefaultLenders()}

	suite.client = &models.Client{Email: "owner@example.com", Name: "Jane Doe", Company: "Doe Trading LLC"}
	suite.Require().NoError(suite.client.SetPassword("TestPass123!"))
	suite.Require().NoError(clients.CreateClient(suite.client))

	suite.otherClient = &models.Client{Email: "other@example.com", Name: "Sam Roe"}
	suite.Require().NoError(suite.otherClient.SetPassword("TestPass123!"))
	suite.Require().NoError(clients.CreateClient(suite.otherClient))

	suite.admin = &models.AdminUser{Email: "admin@example.com", Name: "Portal Admin"}
	suite.Require().NoError(suite.admin.SetPassword("AdminPass123!"))
	suite.Require().NoError(admins.CreateAdmin(suite.admin))

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1, RefreshTokenTTL: 24},
	}

	lenderService := services.NewLenderService(lenders)
	appService := services.NewApplicationService(suite.apps, lenderService, nil)
	authService := services.NewAuthService(clients, admins, cfg)
	adminService := services.NewAdminService(suite.apps, clients)

	appHandler := NewApplicationHandler(appService, authService)
	adminHandler := NewAdminHandler(adminService, appService)
	lenderHandler := NewLenderHandler(lenderService)

	suite.router = gin.New()
	suite.router.Use(middleware.I18nMiddleware())

	v1 := suite.router.Group("/v1")
	lenderRoutes := v1.Group("/lenders")
	lenderRoutes.Use(middleware.OptionalAuth())
	{
		lenderRoutes.GET("", lenderHandler.List)
		lenderRoutes.GET("/:id", lenderHandler.Get)
	}

	applications := v1.Group("/applications")
	applications.Use(middleware.AuthRequired())
	{
		applications.POST("", appHandler.Submit)
		applications.GET("", appHandler.ListMine)
		applications.GET("/:id", appHandler.Get)
		applications.POST("/:id/resubmit", appHandler.Resubmit)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired())
	admin.Use(middleware.AdminRequired())
	{
		admin.PUT("/applications/:id/submissions/:lenderId", adminHandler.UpdateSubmission)
		admin.GET("/dashboard", adminHandler.Dashboard)
	}
}

func (suite *ApplicationHandlerTestSuite) tokenFor(id uuid.UUID, email, name, userType string) string {
	token, err := utils.GenerateJWT(id, email, name, userType, 1)
	suite.Require().NoError(err)
	return token
}

func (suite *ApplicationHandlerTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func submitBody() map[string]interface{} {
	return map[string]interface{}{
		"amount":     50000,
		"lender_ids": []string{"rapid-capital", "business-funding"},
		"documents": map[string]string{
			"funding_application": "funding-application.pdf",
			"bank_statement_1":    "statement-jan.pdf",
			"bank_statement_2":    "statement-feb.pdf",
			"bank_statement_3":    "statement-mar.pdf",
		},
	}
}

func (suite *ApplicationHandlerTestSuite) clientToken() string {
	return suite.tokenFor(suite.client.ID, suite.client.Email, suite.client.Name, "client")
}

func (suite *ApplicationHandlerTestSuite) adminToken() string {
	return suite.tokenFor(suite.admin.ID, suite.admin.Email, suite.admin.Name, "admin")
}

func (suite *ApplicationHandlerTestSuite) submitOne() string {
	w := suite.request("POST", "/v1/applications", suite.clientToken(), submitBody())
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Application models.Application `json:"application"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().True(response.Success)
	return response.Data.Application.ID
}

func (suite *ApplicationHandlerTestSuite) TestSubmitApplication() {
	appID := suite.submitOne()

	year := time.Now().UTC().Year()
	assert.Regexp(suite.T(), `^APP-\d{4}-\d{3}$`, appID)
	assert.Contains(suite.T(), appID, "APP")

	stored := suite.apps.apps[appID]
	suite.Require().NotNil(stored)
	assert.Equal(suite.T(), year, stored.SubmittedDate.Year())
	assert.Len(suite.T(), stored.Submissions, 2)
	assert.Len(suite.T(), stored.Documents, 4)
	assert.Equal(suite.T(), models.SubmissionStatusUnderReview, stored.Status)
}

func (suite *ApplicationHandlerTestSuite) TestSubmitRequiresAuth() {
	w := suite.request("POST", "/v1/applications", "", submitBody())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestSubmitRejectsBadPayload() {
	body := submitBody()
	body["amount"] = 0
	w := suite.request("POST", "/v1/applications", suite.clientToken(), body)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestSubmitRejectsDuplicateLenders() {
	body := submitBody()
	body["lender_ids"] = []string{"rapid-capital", "rapid-capital"}
	w := suite.request("POST", "/v1/applications", suite.clientToken(), body)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code, w.Body.String())
	assert.Empty(suite.T(), suite.apps.apps)
}

func (suite *ApplicationHandlerTestSuite) TestResubmitRejectsDuplicateLenders() {
	appID := suite.submitOne()

	w := suite.request("POST", "/v1/applications/"+appID+"/resubmit", suite.clientToken(), map[string]interface{}{
		"lender_ids": []string{"merchant-advance", "merchant-advance"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code, w.Body.String())
	assert.Len(suite.T(), suite.apps.apps[appID].Submissions, 2)
}

func (suite *ApplicationHandlerTestSuite) TestLenderDirectoryIsPublic() {
	// No Authorization header at all.
	w := suite.request("GET", "/v1/lenders", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "rapid-capital")

	// A valid token rides along without being required.
	w = suite.request("GET", "/v1/lenders/rapid-capital", suite.clientToken(), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// A garbage token does not lock the public directory.
	w = suite.request("GET", "/v1/lenders", "not-a-jwt", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestGetApplicationEnforcesOwnership() {
	appID := suite.submitOne()

	w := suite.request("GET", "/v1/applications/"+appID, suite.clientToken(), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	otherToken := suite.tokenFor(suite.otherClient.ID, suite.otherClient.Email, suite.otherClient.Name, "client")
	w = suite.request("GET", "/v1/applications/"+appID, otherToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("GET", "/v1/applications/APP-2020-999", suite.clientToken(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestResubmitFiltersAndConflicts() {
	appID := suite.submitOne()

	// A mixed selection creates only the genuinely new submission.
	w := suite.request("POST", "/v1/applications/"+appID+"/resubmit", suite.clientToken(), map[string]interface{}{
		"lender_ids": []string{"rapid-capital", "merchant-advance"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	assert.Len(suite.T(), suite.apps.apps[appID].Submissions, 3)

	// Selecting only already-targeted lenders writes nothing.
	w = suite.request("POST", "/v1/applications/"+appID+"/resubmit", suite.clientToken(), map[string]interface{}{
		"lender_ids": []string{"rapid-capital", "merchant-advance"},
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Len(suite.T(), suite.apps.apps[appID].Submissions, 3)
}

func (suite *ApplicationHandlerTestSuite) TestAdminUpdatesSubmission() {
	appID := suite.submitOne()

	w := suite.request("PUT", "/v1/admin/applications/"+appID+"/submissions/rapid-capital", suite.adminToken(), map[string]interface{}{
		"status":          "approved",
		"approval_amount": 40000,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			ApplicationStatus string `json:"application_status"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "approved", response.Data.ApplicationStatus)
	assert.Equal(suite.T(), models.SubmissionStatusApproved, suite.apps.apps[appID].Status)
}

func (suite *ApplicationHandlerTestSuite) TestAdminRoutesRejectClients() {
	appID := suite.submitOne()

	w := suite.request("PUT", "/v1/admin/applications/"+appID+"/submissions/rapid-capital", suite.clientToken(), map[string]interface{}{
		"status": "approved",
	})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("GET", "/v1/admin/dashboard", suite.clientToken(), nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ApplicationHandlerTestSuite) TestAdminUpdateUnknownSubmission() {
	appID := suite.submitOne()

	w := suite.request("PUT", "/v1/admin/applications/"+appID+"/submissions/quick-cash", suite.adminToken(), map[string]interface{}{
		"status": "approved",
	})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestApplicationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationHandlerTestSuite))
}
