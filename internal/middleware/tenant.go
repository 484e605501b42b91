package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/pkg/logger"
)

// TenantScope validates the company_id path parameter and, when the
// token is company-bound, rejects cross-tenant access. The parsed ID is
// stored in context for handlers.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID, err := uuid.Parse(c.Param("company_id"))
		if err != nil {
			common.ErrorResponse(c, 400, "Invalid company ID", err)
			c.Abort()
			return
		}

		if claimed, ok := c.Get("companyID"); ok {
			if s, ok := claimed.(string); ok && s != "" && s != companyID.String() {
				log := logger.WithCompanyID(companyID.String())
				log.Warn().
					Str("claimed_company", s).
					Str("user_id", GetUserID(c)).
					Msg("cross-tenant access rejected")
				common.ErrorResponse(c, 403, "Token is not valid for this company", common.ErrForbidden)
				c.Abort()
				return
			}
		}

		c.Set("tenantID", companyID)
		c.Next()
	}
}

// GetTenantID extracts the validated company ID from context
func GetTenantID(c *gin.Context) uuid.UUID {
	v, exists := c.Get("tenantID")
	if !exists {
		return uuid.Nil
	}
	if id, ok := v.(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
