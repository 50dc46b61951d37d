package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/usecase"
)

// TenantHandler manages HTTP requests for tenants and bank profiles.
type TenantHandler struct {
	tenantUseCase usecase.TenantUseCase
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantUseCase usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{tenantUseCase: tenantUseCase}
}

func (h *TenantHandler) CreateTenant(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.tenantUseCase.CreateTenant(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TenantHandler) GetTenant(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.tenantUseCase.GetTenant(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tenant not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TenantHandler) ListTenants(c *gin.Context) {
	ctx := c.Request.Context()
	limit, offset, err := parsePagination(c, 20, 100)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.tenantUseCase.ListTenants(ctx, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tenants"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TenantHandler) CreateBankProfile(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("id")
	var req dto.CreateBankProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.tenantUseCase.CreateBankProfile(ctx, tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TenantHandler) ListBankProfiles(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("id")

	resp, err := h.tenantUseCase.ListBankProfiles(ctx, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bank profiles"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parsePagination reads limit/offset query params shared by every list
// endpoint, the way the teacher's handlers do it per-handler.
func parsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int, err error) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > maxLimit {
		return 0, 0, errors.New("limit must be between 1 and " + strconv.Itoa(maxLimit))
	}
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		return 0, 0, errors.New("offset must be >= 0")
	}
	return limit, offset, nil
}
