package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/middleware"
	"github.com/draftforge/draftforge-backend/internal/service"
	"github.com/draftforge/draftforge-backend/pkg/ginutil"
)

// WriterProfileHandler handles HTTP requests for writer personas
type WriterProfileHandler struct {
	service service.WriterProfileService
}

// NewWriterProfileHandler creates a new WriterProfileHandler
func NewWriterProfileHandler(service service.WriterProfileService) *WriterProfileHandler {
	return &WriterProfileHandler{service: service}
}

// List godoc
// @Summary      List writer profiles
// @Tags         writer-profiles
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.WriterProfile}
// @Router       /companies/{company_id}/writer-profiles [get]
func (h *WriterProfileHandler) List(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	profiles, err := h.service.List(companyID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list writer profiles", err)
		return
	}

	common.SuccessResponse(c, profiles, nil)
}

// Get godoc
// @Summary      Get a writer profile
// @Tags         writer-profiles
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Writer profile ID"
// @Success      200  {object}  common.APIResponse{data=domain.WriterProfile}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/writer-profiles/{id} [get]
func (h *WriterProfileHandler) Get(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid writer profile ID", err)
		return
	}

	profile, err := h.service.Get(companyID, id)
	if err != nil {
		if errors.Is(err, common.ErrWriterProfileNotFound) {
			common.ErrorResponse(c, 404, "Writer profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch writer profile", err)
		return
	}

	common.SuccessResponse(c, profile, nil)
}

// Create godoc
// @Summary      Create a writer profile
// @Tags         writer-profiles
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                               true  "Company ID"
// @Param        request     body  domain.CreateWriterProfileRequest  true  "Writer profile"
// @Success      201  {object}  common.APIResponse{data=domain.WriterProfile}
// @Router       /companies/{company_id}/writer-profiles [post]
func (h *WriterProfileHandler) Create(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.CreateWriterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	profile, err := h.service.Create(companyID, &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create writer profile", err)
		return
	}

	common.CreatedResponse(c, profile)
}

// Update godoc
// @Summary      Update a writer profile
// @Tags         writer-profiles
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                               true  "Company ID"
// @Param        id          path  string                               true  "Writer profile ID"
// @Param        request     body  domain.UpdateWriterProfileRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse{data=domain.WriterProfile}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/writer-profiles/{id} [put]
func (h *WriterProfileHandler) Update(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid writer profile ID", err)
		return
	}

	var req domain.UpdateWriterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	profile, err := h.service.Update(companyID, id, &req)
	if err != nil {
		if errors.Is(err, common.ErrWriterProfileNotFound) {
			common.ErrorResponse(c, 404, "Writer profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to update writer profile", err)
		return
	}

	common.SuccessResponse(c, profile, nil)
}

// Delete godoc
// @Summary      Delete a writer profile
// @Tags         writer-profiles
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Writer profile ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/writer-profiles/{id} [delete]
func (h *WriterProfileHandler) Delete(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid writer profile ID", err)
		return
	}

	if err := h.service.Delete(companyID, id); err != nil {
		if errors.Is(err, common.ErrWriterProfileNotFound) {
			common.ErrorResponse(c, 404, "Writer profile not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete writer profile", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
