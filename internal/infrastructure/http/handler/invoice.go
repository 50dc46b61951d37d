package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/usecase"
)

// InvoiceHandler manages HTTP requests for invoices, including fiscal XML
// ingest.
type InvoiceHandler struct {
	invoiceUseCase usecase.InvoiceUseCase
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUseCase usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUseCase: invoiceUseCase}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.invoiceUseCase.CreateInvoice(ctx, tenantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// IngestXML accepts a raw fiscal XML body (NFe or CTe) and stores the
// extracted invoice, per spec.md §6's XML-ingest operation.
func (h *InvoiceHandler) IngestXML(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	resp, err := h.invoiceUseCase.IngestXML(ctx, tenantID, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	resp, err := h.invoiceUseCase.GetInvoice(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := c.Param("tenant_id")
	limit, offset, err := parsePagination(c, 20, 100)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.invoiceUseCase.ListInvoices(ctx, tenantID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	actorID := c.GetHeader("X-Actor-ID")

	if err := h.invoiceUseCase.DeleteInvoice(ctx, id, actorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}
