package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/mapper"
	"github.com/fidc/receivables-core/internal/domain/document"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/fiscalxml"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/pkg/apperr"
)

// InvoiceUseCase defines invoice ingest (manual or fiscal-XML), lookup,
// and soft deletion.
type InvoiceUseCase interface {
	CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	IngestXML(ctx context.Context, tenantID string, xml []byte) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, tenantID string, limit, offset int) (*dto.InvoiceListResponse, error)
	DeleteInvoice(ctx context.Context, id, actorID string) error
}

type invoiceUseCase struct {
	invoices ports.InvoiceRepository
	events   ports.EventRepository
}

// NewInvoiceUseCase builds the invoice use case.
func NewInvoiceUseCase(invoices ports.InvoiceRepository, events ports.EventRepository) InvoiceUseCase {
	return &invoiceUseCase{invoices: invoices, events: events}
}

func (uc *invoiceUseCase) CreateInvoice(ctx context.Context, tenantID string, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !document.Validate(req.PayerTaxID) {
		return nil, apperr.New(apperr.KindInvalidTaxID, "payer_tax_id")
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, "issue_date did not parse", err)
	}

	invoice, err := entity.NewInvoice(tenantID, entity.InvoiceSourceKind(req.SourceKind), req.PayerName, req.PayerTaxID,
		mapper.ToAddress(req.PayerAddress), req.AmountCents, issueDate, req.DocNumber)
	if err != nil {
		return nil, fmt.Errorf("build invoice: %w", err)
	}

	if err := uc.invoices.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice: %w", err)
	}

	resp := mapper.ToInvoiceResponse(invoice)
	return &resp, nil
}

// IngestXML extracts an Invoice from a fiscal XML document via C2 and
// persists it PENDING. Parsing errors are reported to the caller and
// never persist, per spec.md §7's error policy.
func (uc *invoiceUseCase) IngestXML(ctx context.Context, tenantID string, xml []byte) (*dto.InvoiceResponse, error) {
	result, err := fiscalxml.Extract(xml)
	if err != nil {
		return nil, err
	}
	if !document.Validate(result.PayerTaxID) {
		return nil, apperr.New(apperr.KindInvalidTaxID, "payer_tax_id")
	}

	sourceKind := entity.InvoiceSourceNFE
	if result.Kind == fiscalxml.KindCTe {
		sourceKind = entity.InvoiceSourceCTE
	}

	invoice, err := entity.NewInvoice(tenantID, sourceKind, result.PayerName, result.PayerTaxID,
		result.Address, result.AmountCents, result.IssueDate, result.DocNumber)
	if err != nil {
		return nil, fmt.Errorf("build invoice: %w", err)
	}

	if err := uc.invoices.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice: %w", err)
	}

	resp := mapper.ToInvoiceResponse(invoice)
	return &resp, nil
}

func (uc *invoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	resp := mapper.ToInvoiceResponse(invoice)
	return &resp, nil
}

func (uc *invoiceUseCase) ListInvoices(ctx context.Context, tenantID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	invoices, total, err := uc.invoices.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		items = append(items, mapper.ToInvoiceResponse(i))
	}
	return &dto.InvoiceListResponse{Items: items, Total: total}, nil
}

func (uc *invoiceUseCase) DeleteInvoice(ctx context.Context, id, actorID string) error {
	invoice, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get invoice: %w", err)
	}
	if !invoice.CanSoftDelete() {
		return apperr.New(apperr.KindConflict, "invoice is linked to a live boleto")
	}
	if err := uc.invoices.SoftDelete(ctx, id, actorID); err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}

	event := entity.NewEvent(invoice.TenantID, "invoice", invoice.ID, "voided", string(invoice.Status), string(entity.InvoiceStatusVoid)).
		WithActor(actorID, "", "", "")
	if err := uc.events.Create(ctx, event); err != nil {
		return fmt.Errorf("record invoice void event: %w", err)
	}
	return nil
}
