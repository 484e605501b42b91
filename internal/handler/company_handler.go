package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/service"
	"github.com/draftforge/draftforge-backend/pkg/ginutil"
)

// CompanyHandler handles HTTP requests for companies (tenants)
type CompanyHandler struct {
	service service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(service service.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.Company}
// @Router       /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	page := domain.Pagination{
		Page:  ginutil.QueryInt(c, "page", 1),
		Limit: ginutil.QueryInt(c, "limit", 20),
	}

	companies, meta, err := h.service.List(page)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to list companies", err)
		return
	}

	common.SuccessResponse(c, companies, meta)
}

// Get godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Success      200  {object}  common.APIResponse{data=domain.Company}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id} [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := ginutil.ParamUUID(c, "company_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid company ID", err)
		return
	}

	company, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, common.ErrCompanyNotFound) {
			common.ErrorResponse(c, 404, "Company not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch company", err)
		return
	}

	common.SuccessResponse(c, company, nil)
}

// Create godoc
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        request  body  domain.CreateCompanyRequest  true  "Company"
// @Success      201  {object}  common.APIResponse{data=domain.Company}
// @Router       /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req domain.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	company, err := h.service.Create(&req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create company", err)
		return
	}

	common.CreatedResponse(c, company)
}

// Update godoc
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company_id  path  string                       true  "Company ID"
// @Param        request  body  domain.UpdateCompanyRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse{data=domain.Company}
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id} [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamUUID(c, "company_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid company ID", err)
		return
	}

	var req domain.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	company, err := h.service.Update(id, &req)
	if err != nil {
		if errors.Is(err, common.ErrCompanyNotFound) {
			common.ErrorResponse(c, 404, "Company not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to update company", err)
		return
	}

	common.SuccessResponse(c, company, nil)
}

// Delete godoc
// @Summary      Delete a company
// @Tags         companies
// @Produce      json
// @Param        company_id  path  string  true  "Company ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /companies/{company_id} [delete]
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamUUID(c, "company_id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid company ID", err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, common.ErrCompanyNotFound) {
			common.ErrorResponse(c, 404, "Company not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete company", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
