package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/usecase"
)

// BoletoHandler manages HTTP requests for boleto creation and lifecycle.
type BoletoHandler struct {
	boletoUseCase usecase.BoletoUseCase
}

// NewBoletoHandler creates a new BoletoHandler.
func NewBoletoHandler(boletoUseCase usecase.BoletoUseCase) *BoletoHandler {
	return &BoletoHandler{boletoUseCase: boletoUseCase}
}

// CreateBatch is the create_boleto_batch(tenant, invoice_ids, bank_kind)
// operation named in spec.md §6.
func (h *BoletoHandler) CreateBatch(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	var req dto.CreateBoletoBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.boletoUseCase.CreateBoletoBatch(ctx, tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ApproveBatch is the bulk-approval operation named in spec.md §5,
// distinct from CreateBatch: it transitions already-created PENDING
// boletos to APPROVED.
func (h *BoletoHandler) ApproveBatch(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	actorID := c.GetHeader("X-Actor-ID")

	var req dto.ApproveBoletosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.boletoUseCase.ApproveBoletos(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletoHandler) GetBoleto(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.boletoUseCase.GetBoleto(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "boleto not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletoHandler) ListBoletos(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	limit, offset, err := parsePagination(c, 20, 100)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.boletoUseCase.ListBoletos(ctx, tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list boletos"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletoHandler) CancelBoleto(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetHeader("X-Actor-ID")

	var req dto.CancelBoletoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.boletoUseCase.CancelBoleto(ctx, id, actorID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "boleto cancelled"})
}
