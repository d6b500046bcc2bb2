// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/i18n"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	appService   *services.ApplicationService
}

func NewAdminHandler(adminService *services.AdminService, appService *services.ApplicationService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		appService:   appService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.DashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/applications
func (h *AdminHandler) ListApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	apps, total, err := h.appService.ListApplications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(apps, total, params))
}

// PUT /admin/applications/:id/submissions/:lenderId
func (h *AdminHandler) UpdateSubmission(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	appID := c.Param("id")
	lenderID := c.Param("lenderId")

	var req services.UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	sub, appStatus, err := h.appService.UpdateSubmission(appID, lenderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
		case errors.Is(err, services.ErrSubmissionNotFound):
			utils.NotFoundResponse(c, i18n.KeySubmissionNotFound)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":            i18n.T(lang, i18n.KeySubmissionUpdated),
		"submission":         sub,
		"application_status": appStatus,
	})
}

// GET /admin/clients
func (h *AdminHandler) ListClients(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	clients, total, err := h.adminService.ListClients(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(clients, total, params))
}

// POST /admin/clients
func (h *AdminHandler) CreateClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	client, err := h.adminService.CreateClient(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientCreated),
		"client":  client,
	})
}

// PUT /admin/clients/:id
func (h *AdminHandler) UpdateClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "client id"), nil)
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	client, err := h.adminService.UpdateClient(clientID, &req)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientUpdated),
		"client":  client,
	})
}

// DELETE /admin/clients/:id
func (h *AdminHandler) DeleteClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "client id"), nil)
		return
	}

	if err := h.adminService.DeleteClient(clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyClientDeleted),
	})
}
