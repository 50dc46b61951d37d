package router

import (
	"github.com/gin-gonic/gin"

	"github.com/fidc/receivables-core/internal/infrastructure/http/handler"
)

// SetupRoutes configures all API routes: tenants/bank profiles, invoice
// ingest, boleto batch creation/lifecycle, and remittance emission.
func SetupRoutes(
	tenantHandler *handler.TenantHandler,
	invoiceHandler *handler.InvoiceHandler,
	boletoHandler *handler.BoletoHandler,
	remittanceHandler *handler.RemittanceHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		tenants := v1.Group("/tenants")
		{
			tenants.POST("", tenantHandler.CreateTenant)
			tenants.GET("", tenantHandler.ListTenants)
			tenants.GET("/:id", tenantHandler.GetTenant)
			tenants.POST("/:id/bank-profiles", tenantHandler.CreateBankProfile)
			tenants.GET("/:id/bank-profiles", tenantHandler.ListBankProfiles)
		}

		invoices := v1.Group("/tenants/:tenant_id/invoices")
		{
			invoices.POST("", invoiceHandler.CreateInvoice)
			invoices.POST("/xml", invoiceHandler.IngestXML)
			invoices.GET("", invoiceHandler.ListInvoices)
		}
		v1.GET("/invoices/:id", invoiceHandler.GetInvoice)
		v1.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)

		boletos := v1.Group("/tenants/:tenant_id/boletos")
		{
			boletos.POST("", boletoHandler.CreateBatch)
			boletos.POST("/approve", boletoHandler.ApproveBatch)
			boletos.GET("", boletoHandler.ListBoletos)
		}
		v1.GET("/boletos/:id", boletoHandler.GetBoleto)
		v1.POST("/boletos/:id/cancel", boletoHandler.CancelBoleto)

		remittances := v1.Group("/tenants/:tenant_id/remittances")
		{
			remittances.POST("", remittanceHandler.EmitRemittance)
		}
		v1.GET("/remittances/:id", remittanceHandler.GetRemittance)
	}

	return r
}
