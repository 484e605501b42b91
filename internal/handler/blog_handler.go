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

// BlogPostHandler handles HTTP requests for blog posts
type BlogPostHandler struct {
	service service.BlogPostService
}

// NewBlogPostHandler creates a new BlogPostHandler
func NewBlogPostHandler(service service.BlogPostService) *BlogPostHandler {
	return &BlogPostHandler{service: service}
}

// List godoc
// @Summary      List blog posts
// @Tags         blog-posts
// @Produce      json
// @Param        company_id  path   string  true   "Company ID"
// @Param        page        query  int     false  "Page number"
// @Param        limit       query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.BlogPost}
// @Router       /companies/{company_id}/blog-posts [get]
func (h *BlogPostHandler) List(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	page := domain.Pagination{
		Page:  ginutil.QueryInt(c, "page", 1),
		Limit: ginutil.QueryInt(c, "limit", 20),
	}

	posts, meta, err := h.service.List(companyID, page)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list blog posts", err)
		return
	}

	common.SuccessResponse(c, posts, meta)
}

// Get godoc
// @Summary      Get a blog post
// @Tags         blog-posts
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Blog post ID"
// @Success      200  {object}  common.APIResponse{data=domain.BlogPost}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/blog-posts/{id} [get]
func (h *BlogPostHandler) Get(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid blog post ID", err)
		return
	}

	post, err := h.service.Get(companyID, id)
	if err != nil {
		if errors.Is(err, common.ErrBlogPostNotFound) {
			common.ErrorResponse(c, 404, "Blog post not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch blog post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// Create godoc
// @Summary      Create a blog post
// @Description  Creates a draft and records version 1 in the history log
// @Tags         blog-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                          true  "Company ID"
// @Param        request     body  domain.CreateBlogPostRequest  true  "Blog post"
// @Success      201  {object}  common.APIResponse{data=domain.BlogPost}
// @Router       /companies/{company_id}/blog-posts [post]
func (h *BlogPostHandler) Create(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Create(companyID, &req, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create blog post", err)
		return
	}

	middleware.CountVersionTracked(string(domain.EntityBlogPost))
	common.CreatedResponse(c, post)
}

// Update godoc
// @Summary      Update a blog post
// @Description  Applies the patch and appends a new version to the history log
// @Tags         blog-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                          true  "Company ID"
// @Param        id          path  string                          true  "Blog post ID"
// @Param        request     body  domain.UpdateBlogPostRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse{data=domain.BlogPost}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/blog-posts/{id} [put]
func (h *BlogPostHandler) Update(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid blog post ID", err)
		return
	}

	var req domain.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.Update(companyID, id, &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBlogPostNotFound):
			common.ErrorResponse(c, 404, "Blog post not found", err)
		case errors.Is(err, common.ErrVersionConflict):
			common.ErrorResponse(c, 409, "Concurrent write conflict, retry", err)
		default:
			common.ErrorResponse(c, 500, "Failed to update blog post", err)
		}
		return
	}

	middleware.CountVersionTracked(string(domain.EntityBlogPost))
	common.SuccessResponse(c, post, nil)
}

// Delete godoc
// @Summary      Delete a blog post
// @Description  Removes the post; its version history is kept
// @Tags         blog-posts
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Param        id          path  string  true  "Blog post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id}/blog-posts/{id} [delete]
func (h *BlogPostHandler) Delete(c *gin.Context) {
	companyID := middleware.GetTenantID(c)
	id, err := ginutil.ParamUUID(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid blog post ID", err)
		return
	}

	if err := h.service.Delete(companyID, id, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, common.ErrBlogPostNotFound) {
			common.ErrorResponse(c, 404, "Blog post not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete blog post", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Generate godoc
// @Summary      Generate a blog post
// @Description  Drafts a post from the company brand voice and a writer profile, recorded as ai_generated
// @Tags         blog-posts
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                            true  "Company ID"
// @Param        request     body  domain.GenerateBlogPostRequest  true  "Generation prompt"
// @Success      201  {object}  common.APIResponse{data=domain.BlogPost}
// @Router       /companies/{company_id}/blog-posts/generate [post]
func (h *BlogPostHandler) Generate(c *gin.Context) {
	companyID := middleware.GetTenantID(c)

	var req domain.GenerateBlogPostRequest
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
			common.ErrorResponse(c, 500, "Failed to generate blog post", err)
		}
		return
	}

	middleware.CountVersionTracked(string(domain.EntityBlogPost))
	common.CreatedResponse(c, post)
}
