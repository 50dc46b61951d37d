// Package worker drains the two asynchronous queues create_boleto_batch
// and emit_remittance publish after their transactions commit: boleto
// PDF rendering and remittance file persistence to blob storage.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/domain/boleto"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/internal/infrastructure/storage"
	"github.com/fidc/receivables-core/pkg/logger"
)

// Worker renders boleto PDFs and persists remittance files after the API
// process has already committed their metadata.
type Worker struct {
	boletos      ports.BoletoRepository
	bankProfiles ports.BankProfileRepository
	remittances  ports.RemittanceRepository
	tenants      ports.TenantRepository
	events       ports.EventRepository
	consumer     dto.Consumer
	storage      storage.StorageService
	logger       logger.Logger
	maxRetries   int
	shutdown     chan struct{}
	wg           sync.WaitGroup
}

// NewWorker creates the worker.
func NewWorker(
	boletos ports.BoletoRepository,
	bankProfiles ports.BankProfileRepository,
	remittances ports.RemittanceRepository,
	tenants ports.TenantRepository,
	events ports.EventRepository,
	consumer dto.Consumer,
	storageService storage.StorageService,
	logger logger.Logger,
	maxRetries int,
) *Worker {
	return &Worker{
		boletos:      boletos,
		bankProfiles: bankProfiles,
		remittances:  remittances,
		tenants:      tenants,
		events:       events,
		consumer:     consumer,
		storage:      storageService,
		logger:       logger,
		maxRetries:   maxRetries,
		shutdown:     make(chan struct{}),
	}
}

// Start begins draining both queues.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting receivables worker")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.consumer.ConsumeBoletoBatch(ctx, w.handleBoletoBatch); err != nil && ctx.Err() == nil {
			w.logger.Error("boleto batch consumer error", logger.F("error", err.Error()))
		}
	}()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.consumer.ConsumeRemittance(ctx, w.handleRemittance); err != nil && ctx.Err() == nil {
			w.logger.Error("remittance consumer error", logger.F("error", err.Error()))
		}
	}()

	w.logger.Info("receivables worker started successfully")
	return nil
}

// Stop gracefully shuts the worker down, waiting for in-flight handlers.
func (w *Worker) Stop(ctx context.Context) error {
	w.logger.Info("stopping receivables worker")
	close(w.shutdown)

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("receivables worker stopped gracefully")
		return nil
	case <-ctx.Done():
		w.logger.Warn("receivables worker shutdown timed out")
		return ctx.Err()
	}
}

// handleBoletoBatch renders the PDF for every boleto in the batch and
// uploads it to blob storage. RabbitMQ redelivers the message (at-least-
// once, via the consumer's Nack(requeue=true)) on any returned error, so
// there is no separate retry-count bookkeeping here; a boleto already
// carrying a PDFStorageKey is skipped, making redelivery idempotent.
func (w *Worker) handleBoletoBatch(ctx context.Context, msg dto.BoletoBatchRequested) error {
	tenant, err := w.tenants.GetByID(ctx, msg.TenantID)
	if err != nil {
		return fmt.Errorf("load tenant for boleto batch: %w", err)
	}

	for _, id := range msg.BoletoIDs {
		if err := w.renderAndStoreBoleto(ctx, tenant, id); err != nil {
			w.logger.Error("failed to render boleto PDF",
				logger.F("boleto_id", id), logger.F("error", err.Error()))
			return err
		}
	}
	return nil
}

func (w *Worker) renderAndStoreBoleto(ctx context.Context, tenant *entity.Tenant, boletoID string) error {
	b, err := w.boletos.GetByID(ctx, boletoID)
	if err != nil {
		return fmt.Errorf("load boleto: %w", err)
	}
	if b.PDFStorageKey != "" {
		return nil // already rendered, a redelivered message is a no-op
	}

	profile, err := w.bankProfiles.GetByTenantAndBank(ctx, b.TenantID, b.Bank)
	if err != nil {
		return fmt.Errorf("load bank profile: %w", err)
	}

	pdfBytes := boleto.RenderPDF(boleto.RenderInput{
		BeneficiaryName:  tenant.LegalName,
		BeneficiaryTaxID: tenant.TaxID,
		Agency:           profile.Agency,
		Account:          profile.Account,
		Wallet:           profile.Wallet,
		DocumentNumber:   b.ID,
		IssueDate:        b.CreatedAt,
		DueDate:          b.DueDate,
		AmountCents:      b.AmountCents,
		NossoNumero:      b.NossoNumeroFormatted,
		Instructions:     "Nao receber apos o vencimento.",
		PayerName:        b.PayerName,
		PayerTaxID:       b.PayerTaxID,
		PayerAddress:     formatAddress(b.PayerAddress),
		PaymentLocation:  "Pagavel em qualquer banco ate o vencimento",
		Barcode:          &boleto.Barcode{Digits: b.Barcode, DigitableLine: b.DigitableLine},
	})

	key := fmt.Sprintf("boletos/%s/%s.pdf", b.TenantID, b.ID)
	if _, err := w.storage.UploadFile(ctx, "receivables", key, bytes.NewReader(pdfBytes), "application/pdf"); err != nil {
		return fmt.Errorf("upload boleto PDF: %w", err)
	}

	b.PDFStorageKey = key
	if err := w.boletos.Update(ctx, b); err != nil {
		return fmt.Errorf("persist boleto storage key: %w", err)
	}

	event := entity.NewEvent(b.TenantID, "boleto", b.ID, "pdf_rendered", "", "")
	if err := w.events.Create(ctx, event); err != nil {
		w.logger.Warn("failed to record pdf_rendered event", logger.F("boleto_id", b.ID), logger.F("error", err.Error()))
	}
	return nil
}

// handleRemittance persists the CNAB bytes carried in the message to blob
// storage. The file row is reloaded only to check idempotency (a
// StorageKey already set means a prior delivery finished the upload) and
// to record the audit event; the bytes themselves come from msg.Content,
// never from a database reload, since RemittanceFile.Content is not a
// persisted column.
func (w *Worker) handleRemittance(ctx context.Context, msg dto.RemittanceRequested) error {
	file, err := w.remittances.GetByID(ctx, msg.RemittanceID)
	if err != nil {
		return fmt.Errorf("load remittance file: %w", err)
	}
	if file.StorageKey != "" {
		return nil
	}
	if len(msg.Content) == 0 {
		w.logger.Warn("remittance content unavailable for storage, skipping", logger.F("remittance_id", file.ID))
		return nil
	}

	key := fmt.Sprintf("remittances/%s/%s", file.TenantID, msg.Filename)
	if _, err := w.storage.UploadFile(ctx, "receivables", key, bytes.NewReader(msg.Content), "text/plain"); err != nil {
		return fmt.Errorf("upload remittance file: %w", err)
	}

	if err := w.remittances.UpdateStorageKey(ctx, file.ID, key); err != nil {
		return fmt.Errorf("persist remittance storage key: %w", err)
	}

	event := entity.NewEvent(file.TenantID, "remittance", file.ID, "stored", "", "")
	if err := w.events.Create(ctx, event); err != nil {
		w.logger.Warn("failed to record remittance stored event", logger.F("remittance_id", file.ID), logger.F("error", err.Error()))
	}
	return nil
}

func formatAddress(a entity.Address) string {
	return fmt.Sprintf("%s, %s - %s - %s/%s", a.Street, a.Number, a.Neighborhood, a.City, a.State)
}
