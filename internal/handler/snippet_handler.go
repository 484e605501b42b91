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

// SnippetHandler handles HTTP requests for reusable snippets
type SnippetHandler struct {
	service service.SnippetService
}

// NewSnippetHandler creates a new SnippetHandler
func NewSnippetHandler(service service.SnippetService) *SnippetHandler {
	return &SnippetHandler{service: service}
}

// List godoc
// @Summary      List snippets
// @Tags         snippets
// @Produce      json
// @Param        company_id  path   string  true   "Company ID"
// @Param        category    query  string  false  "Filter by category"
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.Snippet}
// @Router       /companies/{company_id}/snippets [get]
func (h *SnippetHandler) List(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	page := domain.Pagination{
		Page:  ginutil.QueryInt(c, "page", 1),
		Limit: ginutil.QueryInt(c, "limit", 20),
	}

	snippets, meta, err := h.service.List(companyID, c.Query("category"), page)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list snippets", err)
		return
	}

	common.SuccessResponse(c, snippets, meta)
}

// Get godoc
// @Summary      Get a snippet
// @Tags         snippets
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Snippet ID"
// @Success      200  {object}  common.APIResponse{data=domain.Snippet}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/snippets/{id} [get]
func (h *SnippetHandler) Get(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid snippet ID", err)
		return
	}

	snippet, err := h.service.Get(companyID, id)
	if err != nil {
		if errors.Is(err, common.ErrSnippetNotFound) {
			common.ErrorResponse(c, 404, "Snippet not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch snippet", err)
		return
	}

	common.SuccessResponse(c, snippet, nil)
}

// Create godoc
// @Summary      Create a snippet
// @Tags         snippets
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                        true  "Company ID"
// @Param        request     body  domain.CreateSnippetRequest  true  "Snippet"
// @Success      201  {object}  common.APIResponse{data=domain.Snippet}
// @Router       /companies/{company_id}/snippets [post]
func (h *SnippetHandler) Create(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	snippet, err := h.service.Create(companyID, &req, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create snippet", err)
		return
	}

	middleware.CountVersionTracked(string(domain.EntitySnippet))
	common.CreatedResponse(c, snippet)
}

// Update godoc
// @Summary      Update a snippet
// @Tags         snippets
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                        true  "Company ID"
// @Param        id          path  string                        true  "Snippet ID"
// @Param        request     body  domain.UpdateSnippetRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse{data=domain.Snippet}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/snippets/{id} [put]
func (h *SnippetHandler) Update(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid snippet ID", err)
		return
	}

	var req domain.UpdateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	snippet, err := h.service.Update(companyID, id, &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSnippetNotFound):
			common.ErrorResponse(c, 404, "Snippet not found", err)
		case errors.Is(err, common.ErrVersionConflict):
			common.ErrorResponse(c, 409, "Concurrent write conflict, retry", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update snippet", err)
		}
		return
	}

	middleware.CountVersionTracked(string(domain.EntitySnippet))
	common.SuccessResponse(c, snippet, nil)
}

// Delete godoc
// @Summary      Delete a snippet
// @Tags         snippets
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Snippet ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/snippets/{id} [delete]
func (h *SnippetHandler) Delete(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid snippet ID", err)
		return
	}

	if err := h.service.Delete(companyID, id, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, common.ErrSnippetNotFound) {
			common.ErrorResponse(c, 404, "Snippet not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete snippet", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
