// internal/handlers/lender.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mcaportal/mca-backend/internal/i18n"
	"github.com/mcaportal/mca-backend/internal/services"
	"github.com/mcaportal/mca-backend/internal/utils"
)

type LenderHandler struct {
	lenderService *services.LenderService
}

func NewLenderHandler(lenderService *services.LenderService) *LenderHandler {
	return &LenderHandler{
		lenderService: lenderService,
	}
}

// GET /lenders
func (h *LenderHandler) List(c *gin.Context) {
	lenders := h.lenderService.ListLenders()

	utils.SuccessResponse(c, gin.H{
		"lenders": lenders,
	})
}

// GET /lenders/:id
func (h *LenderHandler) Get(c *gin.Context) {
	lender, err := h.lenderService.ResolveLender(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyLenderNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"lender": lender,
	})
}

// POST /admin/lenders
func (h *LenderHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.CreateLenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lender, err := h.lenderService.CreateLender(userID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLenderCreated),
		"lender":  lender,
	})
}

// PUT /admin/lenders/:id
func (h *LenderHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateLenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	lender, err := h.lenderService.UpdateLender(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrLenderNotFound) {
			utils.NotFoundResponse(c, i18n.KeyLenderNotFound)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLenderUpdated),
		"lender":  lender,
	})
}

// DELETE /admin/lenders/:id
func (h *LenderHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.lenderService.DeleteLender(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrLenderNotFound) {
			utils.NotFoundResponse(c, i18n.KeyLenderNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyLenderDeleted),
	})
}
