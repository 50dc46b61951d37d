package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BoletoStatus is the lifecycle state of a bank slip.
type BoletoStatus string

const (
	BoletoStatusPending    BoletoStatus = "PENDING"
	BoletoStatusApproved   BoletoStatus = "APPROVED"
	BoletoStatusRegistered BoletoStatus = "REGISTERED"
	BoletoStatusCancelled  BoletoStatus = "CANCELLED"
)

// Boleto is a bank slip drawn against one or more Invoices sharing the
// same (Tenant, payer tax id).
type Boleto struct {
	ID          string       `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID    string       `json:"tenant_id" gorm:"type:varchar(36);index"`
	Bank        BankKind     `json:"bank" gorm:"type:varchar(10);index"`
	BankCode    string       `json:"bank_code"`
	PayerName    string    `json:"payer_name"`
	PayerTaxID   string    `json:"payer_tax_id"`
	PayerAddress Address   `json:"payer_address" gorm:"embedded;embeddedPrefix:payer_address_"`
	AmountCents  int64     `json:"amount_cents"`
	DueDate      time.Time `json:"due_date"`
	SpeciesCode  string    `json:"species_code"`

	NossoNumero          int64  `json:"nosso_numero"`
	NossoNumeroFormatted string `json:"nosso_numero_formatted"`
	Barcode              string `json:"barcode"`
	DigitableLine        string `json:"digitable_line"`
	PDFStorageKey        string `json:"pdf_storage_key,omitempty"`

	Status BoletoStatus `json:"status" gorm:"type:varchar(12);index"`

	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	DeletedBy *string    `json:"deleted_by,omitempty"`

	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:BoletoID;references:ID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBoleto builds a PENDING boleto from invoices already validated to
// share (TenantID, PayerTaxID); amount is the caller-summed total cents.
// speciesCode carries forward the grouped invoices' document species
// (e.g. "DM", "DS") into the CNAB record built at emission time.
func NewBoleto(tenantID string, bank BankKind, payerName, payerTaxID string, payerAddress Address, amountCents int64, dueDate time.Time, speciesCode string) (*Boleto, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if speciesCode == "" {
		speciesCode = "DM"
	}
	now := time.Now()
	return &Boleto{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Bank:         bank,
		BankCode:     bank.Code(),
		PayerName:    payerName,
		PayerTaxID:   payerTaxID,
		PayerAddress: payerAddress,
		AmountCents:  amountCents,
		DueDate:      dueDate,
		SpeciesCode:  speciesCode,
		Status:       BoletoStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// AssignNossoNumero stamps the allocated counter value and its
// bank-specific formatting, computed by the caller (C1/C3).
func (b *Boleto) AssignNossoNumero(nn int64, formatted, barcode, digitableLine string) {
	b.NossoNumero = nn
	b.NossoNumeroFormatted = formatted
	b.Barcode = barcode
	b.DigitableLine = digitableLine
	b.UpdatedAt = time.Now()
}

// Approve transitions PENDING -> APPROVED.
func (b *Boleto) Approve() error {
	if b.Status != BoletoStatusPending {
		return errors.New("only a pending boleto can be approved")
	}
	b.Status = BoletoStatusApproved
	b.UpdatedAt = time.Now()
	return nil
}

// MarkRegistered transitions APPROVED -> REGISTERED, the terminal state a
// successful CNAB emission leaves every included boleto in.
func (b *Boleto) MarkRegistered() error {
	if b.Status != BoletoStatusApproved {
		return errors.New("only an approved boleto can be registered")
	}
	b.Status = BoletoStatusRegistered
	b.UpdatedAt = time.Now()
	return nil
}

// CanCancel reports whether the boleto may be cancelled: only from
// PENDING or APPROVED; REGISTERED is terminal for cancellation purposes.
func (b *Boleto) CanCancel() bool {
	return b.Status == BoletoStatusPending || b.Status == BoletoStatusApproved
}

// Cancel transitions to CANCELLED, or fails with CONFLICT semantics left
// to the caller (use-case layer maps this to apperr.KindConflict).
func (b *Boleto) Cancel() error {
	if !b.CanCancel() {
		return errors.New("boleto cannot be cancelled from its current status")
	}
	b.Status = BoletoStatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for GORM.
func (Boleto) TableName() string {
	return "boletos"
}
