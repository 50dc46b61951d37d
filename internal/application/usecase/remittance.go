package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/mapper"
	"github.com/fidc/receivables-core/internal/domain/cnab"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
	"github.com/fidc/receivables-core/pkg/apperr"
	"github.com/fidc/receivables-core/pkg/logger"
)

// RemittanceUseCase implements the emit_remittance operation named in
// spec.md §6.
type RemittanceUseCase interface {
	EmitRemittance(ctx context.Context, tenantID string, req dto.EmitRemittanceRequest) (*dto.RemittanceResponse, error)
	GetRemittance(ctx context.Context, id string) (*dto.RemittanceResponse, error)
}

type remittanceUseCase struct {
	uow          ports.UnitOfWork
	tenants      ports.TenantRepository
	bankProfiles ports.BankProfileRepository
	boletos      ports.BoletoRepository
	remittances  ports.RemittanceRepository
	events       ports.EventRepository
	publisher    dto.Publisher
	log          logger.Logger
}

// NewRemittanceUseCase builds the remittance use case.
func NewRemittanceUseCase(uow ports.UnitOfWork, tenants ports.TenantRepository, bankProfiles ports.BankProfileRepository,
	boletos ports.BoletoRepository, remittances ports.RemittanceRepository, events ports.EventRepository,
	publisher dto.Publisher, log logger.Logger) RemittanceUseCase {
	return &remittanceUseCase{
		uow:          uow,
		tenants:      tenants,
		bankProfiles: bankProfiles,
		boletos:      boletos,
		remittances:  remittances,
		events:       events,
		publisher:    publisher,
		log:          log,
	}
}

// EmitRemittance builds the CNAB file for the given boletos, advancing
// the per-(tenant, bank) sequence counter and flipping every boleto to
// REGISTERED in the same transaction the file row is written in. The
// rendered bytes are handed to the worker for blob storage via
// RemittanceRequested; only the metadata row commits here.
//
// Per spec.md §5, the per-boleto validation loop checks for cancellation
// between boletos: a cancelled call must not have advanced the
// remittance sequence nor written any file, which holds here because
// the cancellation error aborts the enclosing transaction before either
// happens.
func (uc *remittanceUseCase) EmitRemittance(ctx context.Context, tenantID string, req dto.EmitRemittanceRequest) (*dto.RemittanceResponse, error) {
	bank := entity.BankKind(req.Bank)
	if bank != entity.BankA && bank != entity.BankB {
		return nil, apperr.New(apperr.KindUnknownKind, "bank")
	}
	if len(req.BoletoIDs) == 0 {
		return nil, apperr.New(apperr.KindMissingRequired, "boleto_ids")
	}

	var file *entity.RemittanceFile
	now := time.Now()

	err := uc.uow.WithTransaction(ctx, func(ctx context.Context) error {
		tenant, err := uc.tenants.GetByID(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("load tenant: %w", err)
		}
		profile, err := uc.bankProfiles.GetByTenantAndBank(ctx, tenantID, bank)
		if err != nil {
			return fmt.Errorf("load bank profile: %w", err)
		}
		if !profile.Active {
			return apperr.New(apperr.KindBankDisabled, "bank profile is not active")
		}

		boletos, err := uc.boletos.GetByIDs(ctx, req.BoletoIDs)
		if err != nil {
			return err
		}
		for _, b := range boletos {
			if err := ctx.Err(); err != nil {
				return err
			}
			if b.Status != entity.BoletoStatusApproved {
				return apperr.New(apperr.KindConflict, "all boletos in a remittance must be APPROVED")
			}
			if b.Bank != bank {
				return apperr.New(apperr.KindConflict, "boleto belongs to a different bank dialect")
			}
		}

		seq, err := uc.remittances.NextSequence(ctx, tenantID, bank)
		if err != nil {
			return fmt.Errorf("advance remittance sequence: %w", err)
		}

		content, err := buildCNAB(bank, tenant, profile, boletos, seq, now)
		if err != nil {
			return err
		}

		lineCount := len(boletos) + 2 // BANK_B: header + one detail per boleto + trailer
		if bank == entity.BankA {
			// File and batch headers, a P and a Q segment per boleto, batch and file trailers.
			lineCount = 2*len(boletos) + 4
		}
		file = entity.NewRemittanceFile(tenantID, bank, seq, now, content, lineCount)
		if err := uc.remittances.Create(ctx, file); err != nil {
			return fmt.Errorf("persist remittance file: %w", err)
		}

		if err := uc.boletos.MarkRegisteredBatch(ctx, req.BoletoIDs); err != nil {
			return fmt.Errorf("mark boletos registered: %w", err)
		}
		for _, b := range boletos {
			regEvent := entity.NewEvent(tenantID, "boleto", b.ID, "registered", string(entity.BoletoStatusApproved), string(entity.BoletoStatusRegistered))
			if err := uc.events.Create(ctx, regEvent); err != nil {
				return fmt.Errorf("record boleto registration event: %w", err)
			}
		}

		event := entity.NewEvent(tenantID, "remittance", file.ID, "emitted", "", "EMITTED")
		if err := uc.events.Create(ctx, event); err != nil {
			return fmt.Errorf("record remittance event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pubErr := uc.publisher.PublishRemittance(ctx, dto.RemittanceRequested{
		TenantID:     tenantID,
		RemittanceID: file.ID,
		Filename:     file.Filename,
		Content:      file.Content,
		EnqueuedAt:   time.Now(),
	}); pubErr != nil {
		uc.log.Error("failed to enqueue remittance file for storage", logger.F("error", pubErr), logger.F("remittance_id", file.ID))
	}

	resp := mapper.ToRemittanceResponse(file)
	return &resp, nil
}

func (uc *remittanceUseCase) GetRemittance(ctx context.Context, id string) (*dto.RemittanceResponse, error) {
	file, err := uc.remittances.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get remittance: %w", err)
	}
	resp := mapper.ToRemittanceResponse(file)
	return &resp, nil
}

// buildCNAB dispatches to the BANK_A or BANK_B emitter, translating the
// persisted entities into the pure cnab.* snapshots the emitters expect.
func buildCNAB(bank entity.BankKind, tenant *entity.Tenant, profile *entity.BankProfile, boletos []*entity.Boleto, seq int64, now time.Time) ([]byte, error) {
	cnabTenant := cnab.Tenant{LegalName: tenant.LegalName, TaxID: tenant.TaxID}
	cnabProfile := cnab.BankProfile{
		Agency:                 profile.Agency,
		Account:                profile.Account,
		Wallet:                 profile.Wallet,
		Agreement:              profile.Agreement,
		TransmissionCode:       profile.TransmissionCode,
		MonthlyInterestPercent: profile.MonthlyInterestPercent,
		ProtestDays:            profile.ProtestDays,
		WriteoffDays:           profile.WriteoffDays,
	}

	cnabBoletos := make([]cnab.Boleto, 0, len(boletos))
	for _, b := range boletos {
		cnabBoletos = append(cnabBoletos, cnab.Boleto{
			ID:          b.ID,
			NossoNumero: b.NossoNumero,
			DueDate:     b.DueDate,
			IssueDate:   b.CreatedAt,
			AmountCents: b.AmountCents,
			PayerName:   b.PayerName,
			PayerTaxID:  b.PayerTaxID,
			PayerStreet: b.PayerAddress.Street,
			PayerHood:   b.PayerAddress.Neighborhood,
			PayerCity:   b.PayerAddress.City,
			PayerState:  b.PayerAddress.State,
			PayerZip:    b.PayerAddress.ZipCode,
			Species:     b.SpeciesCode,
		})
	}

	switch bank {
	case entity.BankA:
		return cnab.EmitBankA(cnabTenant, cnabProfile, cnabBoletos, seq, now)
	case entity.BankB:
		return cnab.EmitBankB(cnabTenant, cnabProfile, cnabBoletos, seq, now)
	default:
		return nil, apperr.New(apperr.KindUnknownKind, "bank")
	}
}
