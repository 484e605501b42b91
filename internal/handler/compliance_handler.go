package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/service"
)

// ComplianceHandler handles ad-hoc compliance scans of marketing copy
type ComplianceHandler struct {
	service service.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler
func NewComplianceHandler(service service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{service: service}
}

// Scan godoc
// @Summary      Scan content for compliance issues
// @Description  Flags banned phrases and unsubstantiated marketing claims in a piece of copy
// @Tags         compliance
// @Accept       json
// @Produce      json
// @Param        request  body  object{content=string}  true  "Content to scan"
// @Success      200  {object}  common.APIResponse{data=[]service.Finding}
// @Router       /compliance/scan [post]
func (h *ComplianceHandler) Scan(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	findings := h.service.Scan(req.Content)
	common.SuccessResponse(c, gin.H{
		"findings": findings,
		"clean":    len(findings) == 0,
	}, nil)
}
