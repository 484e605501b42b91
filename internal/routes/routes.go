package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge-backend/internal/handler"
	"github.com/draftforge/draftforge-backend/internal/middleware"
	"github.com/draftforge/draftforge-backend/pkg/jwt"
)

// Handlers groups everything the router needs
type Handlers struct {
	Company    *handler.CompanyHandler
	Writer     *handler.WriterProfileHandler
	Blog       *handler.BlogPostHandler
	Social     *handler.SocialPostHandler
	Snippet    *handler.SnippetHandler
	History    *handler.HistoryHandler
	Compliance *handler.ComplianceHandler
}

// Setup registers all API routes under /api/v1. Everything except
// health and metrics requires a valid JWT; company-scoped routes also
// pass tenant isolation checks.
func Setup(r *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtManager))

	v1.GET("/companies", h.Company.List)
	v1.POST("/companies", h.Company.Create)
	v1.GET("/companies/:company_id", h.Company.Get)
	v1.PUT("/companies/:company_id", h.Company.Update)
	v1.DELETE("/companies/:company_id", h.Company.Delete)

	company := v1.Group("/companies/:company_id")
	company.Use(middleware.TenantScope())
	{
		company.GET("/writer-profiles", h.Writer.List)
		company.POST("/writer-profiles", h.Writer.Create)
		company.GET("/writer-profiles/:id", h.Writer.Get)
		company.PUT("/writer-profiles/:id", h.Writer.Update)
		company.DELETE("/writer-profiles/:id", h.Writer.Delete)

		company.GET("/blog-posts", h.Blog.List)
		company.POST("/blog-posts", h.Blog.Create)
		company.POST("/blog-posts/generate", h.Blog.Generate)
		company.GET("/blog-posts/:id", h.Blog.Get)
		company.PUT("/blog-posts/:id", h.Blog.Update)
		company.DELETE("/blog-posts/:id", h.Blog.Delete)

		company.GET("/social-posts", h.Social.List)
		company.POST("/social-posts", h.Social.Create)
		company.POST("/social-posts/generate", h.Social.Generate)
		company.GET("/social-posts/:id", h.Social.Get)
		company.PUT("/social-posts/:id", h.Social.Update)
		company.DELETE("/social-posts/:id", h.Social.Delete)

		company.GET("/snippets", h.Snippet.List)
		company.POST("/snippets", h.Snippet.Create)
		company.GET("/snippets/:id", h.Snippet.Get)
		company.PUT("/snippets/:id", h.Snippet.Update)
		company.DELETE("/snippets/:id", h.Snippet.Delete)
	}

	content := v1.Group("/content/:entity_type/:entity_id")
	{
		content.GET("/history", h.History.GetContentHistory)
		content.GET("/versions/:number", h.History.GetVersion)
		content.GET("/compare", h.History.CompareVersions)
		content.POST("/restore/:number", h.History.RestoreVersion)
	}

	v1.POST("/compliance/scan", h.Compliance.Scan)
}
