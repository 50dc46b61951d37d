package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankKind identifies one of the two supported remittance dialects.
type BankKind string

const (
	// BankA is the 240-column layered dialect, bank code "033".
	BankA BankKind = "BANK_A"
	// BankB is the 400-column flat dialect, bank code "274".
	BankB BankKind = "BANK_B"
)

// Code returns the 3-digit Febraban bank code for the kind.
func (k BankKind) Code() string {
	switch k {
	case BankA:
		return "033"
	case BankB:
		return "274"
	default:
		return ""
	}
}

// BankProfile is the per-(Tenant, BankKind) configuration that governs
// boleto issuance and CNAB emission: the counter triple C4 allocates from,
// the wallet/agreement codes C3/C5 format with, and the financial
// instruction policy C5 encodes into the interest/protest/writeoff blocks.
type BankProfile struct {
	ID        string   `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID  string   `json:"tenant_id" gorm:"type:varchar(36);index"`
	Bank      BankKind `json:"bank" gorm:"type:varchar(10);index"`
	Agency    string   `json:"agency"`
	Account   string   `json:"account"` // digits, optional "-DV" suffix
	Wallet    string   `json:"wallet"`
	Agreement string   `json:"agreement"`
	// TransmissionCode overrides the derived BANK_A transmission code when set.
	TransmissionCode string `json:"transmission_code,omitempty"`

	// Counter triple: invariant min <= current <= max+1, mutated only by C4.
	CounterCurrent int64 `json:"counter_current"`
	CounterMin     int64 `json:"counter_min"`
	CounterMax     int64 `json:"counter_max"`

	Active bool `json:"active"`

	MonthlyInterestPercent decimal.Decimal `json:"monthly_interest_percent" gorm:"type:numeric(7,4)"`
	FinePercent            decimal.Decimal `json:"fine_percent" gorm:"type:numeric(7,4)"`
	ProtestDays            int             `json:"protest_days"`
	WriteoffDays           int             `json:"writeoff_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBankProfile builds a profile with the counter triple seeded per the
// tenant/bank pair. Callers seed CounterCurrent at a high starting point
// (e.g. 1,000,000 or 2,000,000) to avoid colliding with legacy
// manually-issued nosso-números; that convention lives at the call site,
// not in this constructor.
func NewBankProfile(tenantID string, bank BankKind, agency, account, wallet, agreement string, counterMin, counterCurrent, counterMax int64) (*BankProfile, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}
	if bank != BankA && bank != BankB {
		return nil, errors.New("unsupported bank kind")
	}
	if counterMin > counterCurrent || counterCurrent > counterMax+1 {
		return nil, errors.New("counter triple violates min <= current <= max+1")
	}
	now := time.Now()
	return &BankProfile{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		Bank:           bank,
		Agency:         agency,
		Account:        account,
		Wallet:         wallet,
		Agreement:      agreement,
		CounterCurrent: counterCurrent,
		CounterMin:     counterMin,
		CounterMax:     counterMax,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// TableName specifies the table name for GORM.
func (BankProfile) TableName() string {
	return "bank_profiles"
}
