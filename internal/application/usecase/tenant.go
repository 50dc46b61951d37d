package usecase

import (
	"context"
	"fmt"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/application/mapper"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/internal/domain/ports"
)

// TenantUseCase defines tenant onboarding and lookup.
type TenantUseCase interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetTenant(ctx context.Context, id string) (*dto.TenantResponse, error)
	ListTenants(ctx context.Context, limit, offset int) (*dto.TenantListResponse, error)
	CreateBankProfile(ctx context.Context, tenantID string, req dto.CreateBankProfileRequest) (*dto.BankProfileResponse, error)
	ListBankProfiles(ctx context.Context, tenantID string) ([]dto.BankProfileResponse, error)
}

type tenantUseCase struct {
	tenants      ports.TenantRepository
	bankProfiles ports.BankProfileRepository
}

// NewTenantUseCase builds the tenant/bank-profile use case.
func NewTenantUseCase(tenants ports.TenantRepository, bankProfiles ports.BankProfileRepository) TenantUseCase {
	return &tenantUseCase{tenants: tenants, bankProfiles: bankProfiles}
}

func (uc *tenantUseCase) CreateTenant(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := entity.NewTenant(req.DisplayName, req.LegalName, req.TaxID, mapper.ToAddress(req.Address))
	if err != nil {
		return nil, fmt.Errorf("build tenant: %w", err)
	}
	if err := uc.tenants.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("persist tenant: %w", err)
	}
	resp := mapper.ToTenantResponse(tenant)
	return &resp, nil
}

func (uc *tenantUseCase) GetTenant(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	resp := mapper.ToTenantResponse(tenant)
	return &resp, nil
}

func (uc *tenantUseCase) ListTenants(ctx context.Context, limit, offset int) (*dto.TenantListResponse, error) {
	tenants, total, err := uc.tenants.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	items := make([]dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		items = append(items, mapper.ToTenantResponse(t))
	}
	return &dto.TenantListResponse{Items: items, Total: total}, nil
}

func (uc *tenantUseCase) CreateBankProfile(ctx context.Context, tenantID string, req dto.CreateBankProfileRequest) (*dto.BankProfileResponse, error) {
	bank := entity.BankKind(req.Bank)
	profile, err := entity.NewBankProfile(tenantID, bank, req.Agency, req.Account, req.Wallet, req.Agreement,
		req.CounterMin, req.CounterCurrent, req.CounterMax)
	if err != nil {
		return nil, fmt.Errorf("build bank profile: %w", err)
	}
	profile.TransmissionCode = req.TransmissionCode
	profile.MonthlyInterestPercent = mapper.ParseDecimal(req.MonthlyInterestPercent)
	profile.FinePercent = mapper.ParseDecimal(req.FinePercent)
	profile.ProtestDays = req.ProtestDays
	profile.WriteoffDays = req.WriteoffDays

	if err := uc.bankProfiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist bank profile: %w", err)
	}
	resp := mapper.ToBankProfileResponse(profile)
	return &resp, nil
}

func (uc *tenantUseCase) ListBankProfiles(ctx context.Context, tenantID string) ([]dto.BankProfileResponse, error) {
	profiles, err := uc.bankProfiles.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list bank profiles: %w", err)
	}
	items := make([]dto.BankProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, mapper.ToBankProfileResponse(p))
	}
	return items, nil
}
