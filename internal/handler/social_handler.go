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

// SocialPostHandler handles HTTP requests for social posts
type SocialPostHandler struct {
	service service.SocialPostService
}

// NewSocialPostHandler creates a new SocialPostHandler
func NewSocialPostHandler(service service.SocialPostService) *SocialPostHandler {
	return &SocialPostHandler{service: service}
}

// List godoc
// @Summary      List social posts
// @Tags         social-posts
// @Produce      json
// @Param        company_id  path   string  true   "Company ID"
// @Param        platform    query  string  false  "Filter by platform"
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.SocialPost}
// @Router       /companies/{company_id}/social-posts [get]
func (h *SocialPostHandler) List(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	platform := domain.SocialPlatform(c.Query("platform"))
	page := domain.Pagination{
		Page:  ginutil.QueryInt(c, "page", 1),
		Limit: ginutil.QueryInt(c, "limit", 20),
	}

	posts, meta, err := h.service.List(companyID, platform, page)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list social posts", err)
		return
	}

	common.SuccessResponse(c, posts, meta)
}

// Get godoc
// @Summary      Get a social post
// @Tags         social-posts
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Social post ID"
// @Success      200  {object}  common.APIResponse{data=domain.SocialPost}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/social-posts/{id} [get]
func (h *SocialPostHandler) Get(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid social post ID", err)
		return
	}

	post, err := h.service.Get(companyID, id)
	if err != nil {
		if errors.Is(err, common.ErrSocialPostNotFound) {
			common.ErrorResponse(c, 404, "Social post not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch social post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// Create godoc
// @Summary      Create a social post
// @Tags         social-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                            true  "Company ID"
// @Param        request     body  domain.CreateSocialPostRequest  true  "Social post"
// @Success      201  {object}  common.APIResponse{data=domain.SocialPost}
// @Router       /companies/{company_id}/social-posts [post]
func (h *SocialPostHandler) Create(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.CreateSocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(companyID, &req, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create social post", err)
		return
	}

	middleware.CountVersionTracked(string(domain.EntitySocialPost))
	common.CreatedResponse(c, post)
}

// Update godoc
// @Summary      Update a social post
// @Tags         social-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                            true  "Company ID"
// @Param        id          path  string                            true  "Social post ID"
// @Param        request     body  domain.UpdateSocialPostRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse{data=domain.SocialPost}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/social-posts/{id} [put]
func (h *SocialPostHandler) Update(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid social post ID", err)
		return
	}

	var req domain.UpdateSocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Update(companyID, id, &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSocialPostNotFound):
			common.ErrorResponse(c, 404, "Social post not found", err)
		case errors.Is(err, common.ErrVersionConflict):
			common.ErrorResponse(c, 409, "Concurrent write conflict, retry", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update social post", err)
		}
		return
	}

	middleware.CountVersionTracked(string(domain.EntitySocialPost))
	common.SuccessResponse(c, post, nil)
}

// Delete godoc
// @Summary      Delete a social post
// @Tags         social-posts
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Social post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/social-posts/{id} [delete]
func (h *SocialPostHandler) Delete(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid social post ID", err)
		return
	}

	if err := h.service.Delete(companyID, id, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, common.ErrSocialPostNotFound) {
			common.ErrorResponse(c, 404, "Social post not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete social post", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Generate godoc
// @Summary      Generate a social post
// @Description  Drafts platform-appropriate copy from the brand voice, recorded as ai_generated
// @Tags         social-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                              true  "Company ID"
// @Param        request     body  domain.GenerateSocialPostRequest  true  "Generation prompt"
// @Success      201  {object}  common.APIResponse{data=domain.SocialPost}
// @Router       /companies/{company_id}/social-posts/generate [post]
func (h *SocialPostHandler) Generate(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.GenerateSocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Generate(companyID, &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCompanyNotFound):
			common.ErrorResponse(c, 404, "Company not found", err)
		case errors.Is(err, common.ErrWriterProfileNotFound):
			common.ErrorResponse(c, 404, "Writer profile not found", err)
		default:
			common.ErrorResponse(c, 500, "Failed to generate social post", err)
		}
		return
	}

	middleware.CountVersionTracked(string(domain.EntitySocialPost))
	common.CreatedResponse(c, post)
}
