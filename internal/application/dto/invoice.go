package dto

// CreateInvoiceRequest ingests either a manually-entered invoice or one
// already extracted from a fiscal XML upstream of this boundary.
type CreateInvoiceRequest struct {
	SourceKind     string         `json:"source_kind" binding:"required"`
	PayerName      string         `json:"payer_name" binding:"required"`
	PayerTaxID     string         `json:"payer_tax_id" binding:"required"`
	PayerAddress   AddressRequest `json:"payer_address"`
	AmountCents    int64          `json:"amount_cents" binding:"required"`
	IssueDate      string         `json:"issue_date" binding:"required"`
	DocNumber      string         `json:"doc_number" binding:"required"`
}

// IngestXMLRequest carries a raw fiscal XML document to be parsed by C2 and
// stored as a PENDING invoice.
type IngestXMLRequest struct {
	XML []byte `json:"-"`
}

// InvoiceResponse is the outward-facing Invoice representation.
type InvoiceResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	SourceKind   string `json:"source_kind"`
	PayerName    string `json:"payer_name"`
	PayerTaxID   string `json:"payer_tax_id"`
	AmountCents  int64  `json:"amount_cents"`
	IssueDate    string `json:"issue_date"`
	DocNumber    string `json:"doc_number"`
	SpeciesCode  string `json:"species_code"`
	Status       string `json:"status"`
	BoletoID     string `json:"boleto_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// InvoiceListResponse is a paginated listing of invoices.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}
