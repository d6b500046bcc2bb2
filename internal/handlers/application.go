// internal/handlers/application.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mcaportal/mca-backend/internal/i18n"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/utils"
)

type ApplicationHandler struct {
	appService  *services.ApplicationService
	authService *services.AuthService
}

func NewApplicationHandler(appService *services.ApplicationService, authService *services.AuthService) *ApplicationHandler {
	return &ApplicationHandler{
		appService:  appService,
		authService: authService,
	}
}

// POST /applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	client, err := h.authService.ClientByEmail(email)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyClientNotFound)
		return
	}

	app, err := h.appService.Submit(client, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLenderNotFound):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyLenderNotFound), nil)
		case errors.Is(err, services.ErrDuplicateLender):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyApplicationSubmitFailed))
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationSubmitted, app.ID),
		"application": app,
	})
}

// POST /applications/:id/resubmit
func (h *ApplicationHandler) Resubmit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	appID := c.Param("id")

	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	// Admins may resubmit any application
	if userType, _ := utils.GetUserTypeFromContext(c); userType == "admin" {
		email = ""
	}

	var req services.ResubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	subs, err := h.appService.Resubmit(appID, email, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
		case errors.Is(err, services.ErrNotApplicationOwner):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminAccessDenied))
		case errors.Is(err, services.ErrNoNewLenders):
			utils.ConflictResponse(c, err.Error())
		case errors.Is(err, services.ErrLenderNotFound):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyLenderNotFound), nil)
		case errors.Is(err, services.ErrDuplicateLender):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyApplicationSubmitFailed))
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":        i18n.T(lang, i18n.KeyApplicationResubmitted, appID),
		"application_id": appID,
		"submissions":    subs,
	})
}

// GET /applications
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	apps, err := h.appService.ListApplicationsForClient(email)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"applications": apps,
	})
}

// GET /applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	appID := c.Param("id")

	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	if userType, _ := utils.GetUserTypeFromContext(c); userType == "admin" {
		email = ""
	}

	app, err := h.appService.GetApplication(appID, email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
		case errors.Is(err, services.ErrNotApplicationOwner):
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminAccessDenied))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": app,
	})
}
