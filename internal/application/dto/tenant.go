package dto

// AddressRequest mirrors entity.Address for the HTTP boundary.
type AddressRequest struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

// CreateTenantRequest is the payload to register a new cedente.
type CreateTenantRequest struct {
	DisplayName string         `json:"display_name"`
	LegalName   string         `json:"legal_name" binding:"required"`
	TaxID       string         `json:"tax_id" binding:"required"`
	Address     AddressRequest `json:"address"`
}

// TenantResponse is the outward-facing Tenant representation.
type TenantResponse struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	LegalName   string         `json:"legal_name"`
	TaxID       string         `json:"tax_id"`
	Address     AddressRequest `json:"address"`
	CreatedAt   string         `json:"created_at"`
}

// TenantListResponse is a paginated listing of tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateBankProfileRequest registers a BankProfile for a tenant.
type CreateBankProfileRequest struct {
	Bank             string `json:"bank" binding:"required"`
	Agency           string `json:"agency" binding:"required"`
	Account          string `json:"account" binding:"required"`
	Wallet           string `json:"wallet" binding:"required"`
	Agreement        string `json:"agreement"`
	TransmissionCode string `json:"transmission_code"`

	MonthlyInterestPercent string `json:"monthly_interest_percent"`
	FinePercent            string `json:"fine_percent"`
	ProtestDays            int    `json:"protest_days"`
	WriteoffDays           int    `json:"writeoff_days"`

	CounterMin     int64 `json:"counter_min" binding:"required"`
	CounterCurrent int64 `json:"counter_current" binding:"required"`
	CounterMax     int64 `json:"counter_max" binding:"required"`
}

// BankProfileResponse is the outward-facing BankProfile representation.
type BankProfileResponse struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenant_id"`
	Bank           string `json:"bank"`
	Agency         string `json:"agency"`
	Account        string `json:"account"`
	Wallet         string `json:"wallet"`
	Agreement      string `json:"agreement"`
	CounterCurrent int64  `json:"counter_current"`
	CounterMin     int64  `json:"counter_min"`
	CounterMax     int64  `json:"counter_max"`
	Active         bool   `json:"active"`
}
