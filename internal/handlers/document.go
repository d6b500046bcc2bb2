// internal/handlers/document.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcaportal/mca-backend/internal/i18n"
	"github.com/mcaportal/mca-backend/internal/models"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/utils"
)

type DocumentHandler struct {
	storageService *services.StorageService
	appService     *services.ApplicationService
}

func NewDocumentHandler(storageService *services.StorageService, appService *services.ApplicationService) *DocumentHandler {
	return &DocumentHandler{
		storageService: storageService,
		appService:     appService,
	}
}

// POST /applications/:id/documents/:type
func (h *DocumentHandler) Upload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	appID := c.Param("id")

	// Storage init can fail at startup (bad AWS config); the rest of the
	// portal keeps working with uploads unavailable.
	if h.storageService == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
			i18n.T(lang, i18n.KeyDocumentStorageDown), nil)
		return
	}

	email, exists := utils.GetUserEmailFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	if userType, _ := utils.GetUserTypeFromContext(c); userType == "admin" {
		email = ""
	}

	docType := models.DocumentType(c.Param("type"))
	if !docType.Valid() {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "document type"), nil)
		return
	}

	// Ownership check happens through the same path reads use
	if _, err := h.appService.GetApplication(appID, email); err != nil {
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

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}
	defer file.Close()

	doc, err := h.storageService.UploadDocument(appID, docType, file, header)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			utils.NotFoundResponse(c, i18n.KeyDocumentNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDocumentUploaded),
		"document": doc,
	})
}
