package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/mapper"
	"github.com/fidc/receivables-core/internal/domain/boleto"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/pkg/apperr"
	"github.com/fidc/receivables-core/pkg/logger"
)

// BoletoUseCase implements the create_boleto_batch operation named in
// spec.md §6, the bulk-approval and cancellation operations named in
// spec.md §5.
type BoletoUseCase interface {
	CreateBoletoBatch(ctx context.Context, tenantID string, req dto.CreateBoletoBatchRequest) (*dto.BoletoBatchResponse, error)
	ApproveBoletos(ctx context.Context, tenantID, actorID string, req dto.ApproveBoletosRequest) (*dto.ApproveBoletosResponse, error)
	GetBoleto(ctx context.Context, id string) (*dto.BoletoResponse, error)
	ListBoletos(ctx context.Context, tenantID string, limit, offset int) ([]dto.BoletoResponse, error)
	CancelBoleto(ctx context.Context, id, actorID string, req dto.CancelBoletoRequest) error
}

type boletoUseCase struct {
	uow          ports.UnitOfWork
	invoices     ports.InvoiceRepository
	bankProfiles ports.BankProfileRepository
	boletos      ports.BoletoRepository
	events       ports.EventRepository
	publisher    dto.Publisher
	log          logger.Logger
}

// NewBoletoUseCase builds the boleto use case.
func NewBoletoUseCase(uow ports.UnitOfWork, invoices ports.InvoiceRepository, bankProfiles ports.BankProfileRepository,
	boletos ports.BoletoRepository, events ports.EventRepository, publisher dto.Publisher, log logger.Logger) BoletoUseCase {
	return &boletoUseCase{
		uow:          uow,
		invoices:     invoices,
		bankProfiles: bankProfiles,
		boletos:      boletos,
		events:       events,
		publisher:    publisher,
		log:          log,
	}
}

// CreateBoletoBatch groups the given invoices by (tenant, payer tax id),
// one boleto per group, allocating a nosso-número and building the
// barcode/digitable-line for each synchronously (C1/C3/C4 are pure or
// single-lock operations, cheap enough to run inline). Boletos are left
// PENDING; approving them for remittance is a distinct bulk operation
// (ApproveBoletos). PDF rendering is deferred to the worker via a
// BoletoBatchRequested event, since gofpdf page layout is comparatively
// expensive and has no bearing on the transaction's atomicity.
//
// Per spec.md §5, this loop checks for cancellation between boletos: a
// cancelled call must not have advanced the nosso-número counter for any
// group it had not yet reached, since each iteration's allocation and
// persistence happen inside the same transaction the cancellation error
// aborts.
func (uc *boletoUseCase) CreateBoletoBatch(ctx context.Context, tenantID string, req dto.CreateBoletoBatchRequest) (*dto.BoletoBatchResponse, error) {
	bank := entity.BankKind(req.Bank)
	if bank != entity.BankA && bank != entity.BankB {
		return nil, apperr.New(apperr.KindUnknownKind, "bank")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, "due_date did not parse", err)
	}
	if len(req.InvoiceIDs) == 0 {
		return nil, apperr.New(apperr.KindMissingRequired, "invoice_ids")
	}

	var created []*entity.Boleto

	err = uc.uow.WithTransaction(ctx, func(ctx context.Context) error {
		invoices, err := uc.invoices.GetByIDs(ctx, req.InvoiceIDs)
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			if inv.TenantID != tenantID {
				return apperr.New(apperr.KindConflict, "invoice belongs to a different tenant")
			}
		}

		groups := groupInvoicesByPayer(invoices)

		profile, err := uc.bankProfiles.GetByTenantAndBank(ctx, tenantID, bank)
		if err != nil {
			return fmt.Errorf("load bank profile: %w", err)
		}
		if !profile.Active {
			return apperr.New(apperr.KindBankDisabled, "bank profile is not active")
		}

		for _, group := range groups {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := uc.createOneBoleto(ctx, tenantID, bank, group, dueDate)
			if err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(created))
	items := make([]dto.BoletoResponse, 0, len(created))
	for _, b := range created {
		ids = append(ids, b.ID)
		items = append(items, mapper.ToBoletoResponse(b))
	}

	if pubErr := uc.publisher.PublishBoletoBatch(ctx, dto.BoletoBatchRequested{
		TenantID:   tenantID,
		BoletoIDs:  ids,
		EnqueuedAt: time.Now(),
	}); pubErr != nil {
		uc.log.Error("failed to enqueue boleto batch for PDF rendering", logger.F("error", pubErr), logger.F("tenant_id", tenantID))
	}

	return &dto.BoletoBatchResponse{Boletos: items}, nil
}

// createOneBoleto builds a single boleto from a payer-grouped set of
// invoices, allocating its nosso-número under the transaction's row
// lock and linking every contributing invoice. Must run inside the
// enclosing WithTransaction call.
func (uc *boletoUseCase) createOneBoleto(ctx context.Context, tenantID string, bank entity.BankKind, group payerGroup, dueDate time.Time) (*entity.Boleto, error) {
	current, _, max, err := uc.bankProfiles.LockForAllocation(ctx, tenantID, bank)
	if err != nil {
		return nil, err
	}
	if current > max {
		return nil, apperr.New(apperr.KindExhausted, "nosso-numero counter has reached its configured maximum")
	}

	nn := current
	if err := uc.bankProfiles.AdvanceCounter(ctx, tenantID, bank, current+1); err != nil {
		return nil, fmt.Errorf("advance nosso-numero counter: %w", err)
	}

	profile, err := uc.bankProfiles.GetByTenantAndBank(ctx, tenantID, bank)
	if err != nil {
		return nil, fmt.Errorf("reload bank profile: %w", err)
	}

	b, err := entity.NewBoleto(tenantID, bank, group.payerName, group.payerTaxID, group.payerAddress, group.amountCents, dueDate, group.speciesCode)
	if err != nil {
		return nil, fmt.Errorf("build boleto: %w", err)
	}

	bc, err := boleto.Build(bank, dueDate, group.amountCents, nn, profile.Wallet)
	if err != nil {
		return nil, err
	}
	formatted := boleto.FormatNossoNumero(bank, profile.Wallet, nn)
	b.AssignNossoNumero(nn, formatted, bc.Digits, bc.DigitableLine)

	if err := uc.boletos.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("persist boleto: %w", err)
	}

	for _, inv := range group.invoices {
		linkedFrom := inv.Status
		inv.LinkToBoleto(b.ID)
		if err := uc.invoices.Update(ctx, inv); err != nil {
			return nil, fmt.Errorf("link invoice to boleto: %w", err)
		}
		linkEvent := entity.NewEvent(tenantID, "invoice", inv.ID, "linked", string(linkedFrom), string(entity.InvoiceStatusLinked))
		if err := uc.events.Create(ctx, linkEvent); err != nil {
			return nil, fmt.Errorf("record invoice link event: %w", err)
		}
	}

	event := entity.NewEvent(tenantID, "boleto", b.ID, "created", "", string(entity.BoletoStatusPending))
	if err := uc.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record boleto creation event: %w", err)
	}

	return b, nil
}

// ApproveBoletos is the bulk-approval operation named in spec.md §5: a
// role-gated transition of already-created PENDING boletos to APPROVED,
// each logged as its own audit event. Ids not owned by tenantID or not
// currently PENDING are silently skipped rather than failing the whole
// batch, since a partial approval is still useful progress and nothing
// here touches the nosso-número counter or a remittance sequence.
func (uc *boletoUseCase) ApproveBoletos(ctx context.Context, tenantID, actorID string, req dto.ApproveBoletosRequest) (*dto.ApproveBoletosResponse, error) {
	if len(req.BoletoIDs) == 0 {
		return nil, apperr.New(apperr.KindMissingRequired, "boleto_ids")
	}

	var approved []*entity.Boleto
	err := uc.uow.WithTransaction(ctx, func(ctx context.Context) error {
		boletos, err := uc.boletos.GetByIDs(ctx, req.BoletoIDs)
		if err != nil {
			return err
		}
		for _, b := range boletos {
			if err := ctx.Err(); err != nil {
				return err
			}
			if b.TenantID != tenantID || b.Status != entity.BoletoStatusPending {
				continue
			}
			from := b.Status
			if err := b.Approve(); err != nil {
				return fmt.Errorf("approve boleto: %w", err)
			}
			if err := uc.boletos.Update(ctx, b); err != nil {
				return fmt.Errorf("persist boleto approval: %w", err)
			}
			event := entity.NewEvent(tenantID, "boleto", b.ID, "approved", string(from), string(entity.BoletoStatusApproved)).
				WithActor(actorID, "", "", "")
			if err := uc.events.Create(ctx, event); err != nil {
				return fmt.Errorf("record boleto approval event: %w", err)
			}
			approved = append(approved, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.BoletoResponse, 0, len(approved))
	for _, b := range approved {
		items = append(items, mapper.ToBoletoResponse(b))
	}
	return &dto.ApproveBoletosResponse{Approved: items}, nil
}

type payerGroup struct {
	payerTaxID   string
	payerName    string
	payerAddress entity.Address
	speciesCode  string
	amountCents  int64
	invoices     []*entity.Invoice
}

// groupInvoicesByPayer partitions invoices sharing a tenant by payer tax
// id, summing amounts into one boleto per payer — spec.md §6's "one or
// more invoices sharing the same payer" batching rule. speciesCode is
// taken from the first invoice in the group, same as payerAddress.
func groupInvoicesByPayer(invoices []*entity.Invoice) []payerGroup {
	order := make([]string, 0)
	byPayer := make(map[string]*payerGroup)
	for _, inv := range invoices {
		g, ok := byPayer[inv.PayerTaxID]
		if !ok {
			g = &payerGroup{payerTaxID: inv.PayerTaxID, payerName: inv.PayerName, payerAddress: inv.PayerAddress, speciesCode: inv.SpeciesCode}
			byPayer[inv.PayerTaxID] = g
			order = append(order, inv.PayerTaxID)
		}
		g.amountCents += inv.AmountCents
		g.invoices = append(g.invoices, inv)
	}
	groups := make([]payerGroup, 0, len(order))
	for _, taxID := range order {
		groups = append(groups, *byPayer[taxID])
	}
	return groups
}

func (uc *boletoUseCase) GetBoleto(ctx context.Context, id string) (*dto.BoletoResponse, error) {
	b, err := uc.boletos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get boleto: %w", err)
	}
	resp := mapper.ToBoletoResponse(b)
	return &resp, nil
}

func (uc *boletoUseCase) ListBoletos(ctx context.Context, tenantID string, limit, offset int) ([]dto.BoletoResponse, error) {
	boletos, _, err := uc.boletos.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list boletos: %w", err)
	}
	items := make([]dto.BoletoResponse, 0, len(boletos))
	for _, b := range boletos {
		items = append(items, mapper.ToBoletoResponse(b))
	}
	return items, nil
}

// CancelBoleto cancels a PENDING or APPROVED boleto. A REGISTERED boleto
// cannot be cancelled through this path; callers get CONFLICT per
// spec.md §7.
func (uc *boletoUseCase) CancelBoleto(ctx context.Context, id, actorID string, req dto.CancelBoletoRequest) error {
	b, err := uc.boletos.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get boleto: %w", err)
	}
	if !b.CanCancel() {
		return apperr.New(apperr.KindConflict, "boleto cannot be cancelled once registered")
	}
	from := b.Status
	if err := b.Cancel(); err != nil {
		return apperr.Wrap(apperr.KindConflict, "cancel boleto", err)
	}
	if err := uc.boletos.Update(ctx, b); err != nil {
		return fmt.Errorf("persist boleto cancellation: %w", err)
	}

	event := entity.NewEvent(b.TenantID, "boleto", b.ID, "cancelled", string(from), string(entity.BoletoStatusCancelled)).
		WithActor(actorID, "", "", "")
	event.Details = entity.Details{"reason": req.Reason}
	if err := uc.events.Create(ctx, event); err != nil {
		return fmt.Errorf("record boleto cancellation event: %w", err)
	}
	return nil
}
