package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/usecase"
)

// RemittanceHandler manages HTTP requests for CNAB remittance emission.
type RemittanceHandler struct {
	remittanceUseCase usecase.RemittanceUseCase
}

// NewRemittanceHandler creates a new RemittanceHandler.
func NewRemittanceHandler(remittanceUseCase usecase.RemittanceUseCase) *RemittanceHandler {
	return &RemittanceHandler{remittanceUseCase: remittanceUseCase}
}

// EmitRemittance is the emit_remittance(tenant, bank_kind, boleto_ids)
// operation named in spec.md §6.
func (h *RemittanceHandler) EmitRemittance(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	var req dto.EmitRemittanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.remittanceUseCase.EmitRemittance(ctx, tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RemittanceHandler) GetRemittance(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.remittanceUseCase.GetRemittance(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "remittance not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
