package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/middleware"
	"github.com/draftforge/draftforge-backend/internal/service"
	"github.com/draftforge/draftforge-backend/pkg/ginutil"
)

// HistoryHandler handles HTTP requests for content history, version
// comparison and restore
type HistoryHandler struct {
	history    service.HistoryService
	versions   service.VersionService
	comparison service.ComparisonService
	restore    service.RestoreService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(
	history service.HistoryService,
	versions service.VersionService,
	comparison service.ComparisonService,
	restore service.RestoreService,
) *HistoryHandler {
	return &HistoryHandler{
		history:    history,
		versions:   versions,
		comparison: comparison,
		restore:    restore,
	}
}

// GetContentHistory godoc
// @Summary      Content history
// @Description  Paginated version and revision history for one content entity, with summary statistics
// @Tags         history
// @Produce      json
// @Param        entity_type  path   string  true   "Entity type (blog_post, social_post, snippet)"
// @Param        entity_id    path   string  true   "Entity ID"
// @Param        page         query  int     false  "Page number"  default(1)
// @Param        limit        query  int     false  "Items per page"  default(20)
// @Param        sources      query  string  false  "Comma-separated change sources"
// @Param        changed_by   query  string  false  "Comma-separated actor IDs"
// @Param        start_date   query  string  false  "RFC3339 lower bound"
// @Param        end_date     query  string  false  "RFC3339 upper bound"
// @Param        section_id       query  string  false  "Section scope (revisions only)"
// @Param        paragraph_index  query  int     false  "Paragraph scope (revisions only)"
// @Success      200  {object}  common.APIResponse{data=domain.ContentHistory}
// @Router       /content/{entity_type}/{entity_id}/history [get]
func (h *HistoryHandler) GetContentHistory(c *gin.Context) {
	entityType := domain.EntityType(c.Param("entity_type"))
	entityID, err := ginutil.ParamUUID(c, "entity_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid entity ID", err)
		return
	}

	filter := domain.HistoryFilter{}
	for _, s := range ginutil.QueryCSV(c, "sources") {
		filter.Sources = append(filter.Sources, domain.ChangeSource(s))
	}
	filter.ChangedBy = ginutil.QueryCSV(c, "changed_by")
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid start_date", err)
			return
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid end_date", err)
			return
		}
		filter.EndDate = &t
	}
	if v := c.Query("section_id"); v != "" {
		filter.SectionID = &v
	}
	if v := c.Query("paragraph_index"); v != "" {
		idx, err := strconv.Atoi(v)
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid paragraph_index", err)
			return
		}
		filter.ParagraphIndex = &idx
	}

	page := domain.Pagination{
		Page:  ginutil.QueryInt(c, "page", 1),
		Limit: ginutil.QueryInt(c, "limit", 20),
	}

	history, err := h.history.GetContentHistory(c.Request.Context(), entityType, entityID, filter, page)
	if err != nil {
		if errors.Is(err, common.ErrInvalidEntityType) {
			common.ErrorResponse(c, 400, "Invalid entity type", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch content history", err)
		return
	}

	common.SuccessResponse(c, history, &common.Meta{
		Page:       history.Page,
		Limit:      history.Limit,
		TotalPages: history.TotalPages,
	})
}

// GetVersion godoc
// @Summary      Single version
// @Description  One recorded version of a content entity by version number
// @Tags         history
// @Produce      json
// @Param        entity_type  path  string  true  "Entity type"
// @Param        entity_id    path  string  true  "Entity ID"
// @Param        number       path  int     true  "Version number"
// @Success      200  {object}  common.APIResponse{data=domain.ContentVersion}
// @Failure      404  {object}  common.APIResponse
// @Router       /content/{entity_type}/{entity_id}/versions/{number} [get]
func (h *HistoryHandler) GetVersion(c *gin.Context) {
	entityType := domain.EntityType(c.Param("entity_type"))
	entityID, err := ginutil.ParamUUID(c, "entity_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid entity ID", err)
		return
	}
	number, err := ginutil.ParamInt(c, "number")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid version number", err)
		return
	}

	version, err := h.versions.GetVersion(entityType, entityID, number)
	if err != nil {
		if errors.Is(err, common.ErrVersionNotFound) {
			common.ErrorResponse(c, 404, "Version not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch version", err)
		return
	}

	common.SuccessResponse(c, version, nil)
}

// CompareVersions godoc
// @Summary      Compare two versions
// @Description  Structural diff between two versions plus a summary of the spanned range
// @Tags         history
// @Produce      json
// @Param        entity_type  path   string  true  "Entity type"
// @Param        entity_id    path   string  true  "Entity ID"
// @Param        from         query  int     true  "From version number"
// @Param        to           query  int     true  "To version number"
// @Success      200  {object}  common.APIResponse{data=domain.VersionComparison}
// @Failure      404  {object}  common.APIResponse
// @Router       /content/{entity_type}/{entity_id}/compare [get]
func (h *HistoryHandler) CompareVersions(c *gin.Context) {
	entityType := domain.EntityType(c.Param("entity_type"))
	entityID, err := ginutil.ParamUUID(c, "entity_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid entity ID", err)
		return
	}
	from := ginutil.QueryInt(c, "from", 0)
	to := ginutil.QueryInt(c, "to", 0)

	comparison, err := h.comparison.CompareVersions(entityType, entityID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrVersionNotFound):
			common.ErrorResponse(c, 404, "Version not found", err)
		case errors.Is(err, common.ErrInvalidRange), errors.Is(err, common.ErrInvalidEntityType):
			common.ErrorResponse(c, 400, "Invalid comparison request", err)
		default:
			common.ErrorResponse(c, 500, "Failed to compare versions", err)
		}
		return
	}

	common.SuccessResponse(c, comparison, nil)
}

// RestoreVersion godoc
// @Summary      Restore a version
// @Description  Makes a historical version the live state; the restore itself is appended to the history
// @Tags         history
// @Accept       json
// @Produce      json
// @Param        entity_type  path  string  true  "Entity type"
// @Param        entity_id    path  string  true  "Entity ID"
// @Param        number       path  int     true  "Target version number"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/{entity_type}/{entity_id}/restore/{number} [post]
func (h *HistoryHandler) RestoreVersion(c *gin.Context) {
	entityType := domain.EntityType(c.Param("entity_type"))
	entityID, err := ginutil.ParamUUID(c, "entity_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid entity ID", err)
		return
	}
	number, err := ginutil.ParamInt(c, "number")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid version number", err)
		return
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&body)

	actorID := middleware.GetUserID(c)
	err = h.restore.RestoreVersion(entityType, entityID, number, actorID, body.Notes)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrVersionNotFound),
			errors.Is(err, common.ErrBlogPostNotFound),
			errors.Is(err, common.ErrSocialPostNotFound),
			errors.Is(err, common.ErrSnippetNotFound):
			common.ErrorResponse(c, 404, "Restore target not found", err)
		case errors.Is(err, common.ErrVersionConflict):
			common.ErrorResponse(c, 409, "Concurrent write conflict, retry", err)
		case errors.Is(err, common.ErrInvalidEntityType):
			common.ErrorResponse(c, 400, "Invalid entity type", err)
		default:
			common.ErrorResponse(c, 500, "Failed to restore version", err)
		}
		return
	}

	middleware.CountRestore()
	common.SuccessResponse(c, gin.H{"restored_to": number}, nil)
}
