package dto

import (
	"context"
	"time"
)

// BoletoBatchRequested is published after create_boleto_batch persists its
// invoices/boletos (barcode and digitable line already built), so the
// worker can render each boleto's PDF and push it to the blob store
// asynchronously. Carries only identifiers; the worker reloads state from
// the repositories.
type BoletoBatchRequested struct {
	TenantID  string    `json:"tenant_id"`
	BoletoIDs []string  `json:"boleto_ids"`
	RequestID string    `json:"request_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// RemittanceRequested is published after emit_remittance has advanced the
// sequence counter and flipped every boleto to REGISTERED inside the same
// transaction, so the worker can persist the rendered CNAB file. Unlike
// BoletoBatchRequested, the CNAB bytes themselves travel in the message:
// RemittanceFile.Content is deliberately not a persisted column (the blob
// store is its durable home, not the row), so a worker that only reloaded
// the file by ID would find nothing to upload.
type RemittanceRequested struct {
	TenantID     string    `json:"tenant_id"`
	RemittanceID string    `json:"remittance_id"`
	Filename     string    `json:"filename"`
	Content      []byte    `json:"content"`
	RequestID    string    `json:"request_id"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// Publisher abstracts the message bus used by the API.
type Publisher interface {
	PublishBoletoBatch(ctx context.Context, msg BoletoBatchRequested) error
	PublishRemittance(ctx context.Context, msg RemittanceRequested) error
}

// Consumer abstracts the worker subscription to the two queues.
type Consumer interface {
	ConsumeBoletoBatch(ctx context.Context, handler func(context.Context, BoletoBatchRequested) error) error
	ConsumeRemittance(ctx context.Context, handler func(context.Context, RemittanceRequested) error) error
}
