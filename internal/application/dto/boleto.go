package dto

// CreateBoletoBatchRequest is the create_boleto_batch(tenant, invoice_ids,
// bank_kind) operation named in spec.md §6.
type CreateBoletoBatchRequest struct {
	InvoiceIDs []string `json:"invoice_ids" binding:"required"`
	Bank       string   `json:"bank" binding:"required"`
	DueDate    string   `json:"due_date" binding:"required"`
}

// BoletoResponse is the outward-facing Boleto representation.
type BoletoResponse struct {
	ID                   string `json:"id"`
	TenantID             string `json:"tenant_id"`
	Bank                 string `json:"bank"`
	PayerName            string `json:"payer_name"`
	PayerTaxID           string `json:"payer_tax_id"`
	AmountCents          int64  `json:"amount_cents"`
	DueDate              string `json:"due_date"`
	NossoNumero          int64  `json:"nosso_numero"`
	NossoNumeroFormatted string `json:"nosso_numero_formatted"`
	Barcode              string `json:"barcode"`
	DigitableLine        string `json:"digitable_line"`
	Status               string `json:"status"`
}

// BoletoBatchResponse wraps the boletos produced by one
// create_boleto_batch call.
type BoletoBatchResponse struct {
	Boletos []BoletoResponse `json:"boletos"`
}

// CancelBoletoRequest carries the justification for a cancellation.
type CancelBoletoRequest struct {
	Reason string `json:"reason"`
}

// ApproveBoletosRequest is the bulk-approval operation named in spec.md
// §5: a role-gated transition of already-created PENDING boletos to
// APPROVED, distinct from create_boleto_batch itself.
type ApproveBoletosRequest struct {
	BoletoIDs []string `json:"boleto_ids" binding:"required"`
}

// ApproveBoletosResponse reports how many of the requested boletos were
// actually transitioned; ids already past PENDING are skipped, not errored.
type ApproveBoletosResponse struct {
	Approved []BoletoResponse `json:"approved"`
}

// EmitRemittanceRequest is the emit_remittance(tenant, bank_kind,
// boleto_ids) operation named in spec.md §6.
type EmitRemittanceRequest struct {
	Bank      string   `json:"bank" binding:"required"`
	BoletoIDs []string `json:"boleto_ids" binding:"required"`
}

// RemittanceResponse is the outward-facing RemittanceFile representation.
type RemittanceResponse struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenant_id"`
	Bank      string `json:"bank"`
	Sequence  int64  `json:"sequence"`
	Filename  string `json:"filename"`
	LineCount int    `json:"line_count"`
	CreatedAt string `json:"created_at"`
}
