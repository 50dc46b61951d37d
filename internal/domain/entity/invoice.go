package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// InvoiceSourceKind identifies how an Invoice entered the system.
type InvoiceSourceKind string

const (
	InvoiceSourceNFE    InvoiceSourceKind = "NFE"
	InvoiceSourceCTE    InvoiceSourceKind = "CTE"
	InvoiceSourceManual InvoiceSourceKind = "MANUAL"
)

// InvoiceStatus is the lifecycle state of an Invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusLinked  InvoiceStatus = "LINKED"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// Invoice is one fiscal document (or manual entry) contributing to a
// Boleto's amount.
type Invoice struct {
	ID                 string            `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID           string            `json:"tenant_id" gorm:"type:varchar(36);index"`
	SourceKind         InvoiceSourceKind `json:"source_kind" gorm:"type:varchar(10)"`
	OriginalFilePath   string            `json:"original_file_path,omitempty"`
	PayerName          string            `json:"payer_name"`
	PayerTaxID         string            `json:"payer_tax_id"`
	PayerAddress       Address           `json:"payer_address" gorm:"embedded;embeddedPrefix:payer_address_"`
	AmountCents        int64             `json:"amount_cents"`
	IssueDate          time.Time         `json:"issue_date"`
	DocNumber          string            `json:"doc_number"`
	SpeciesCode        string            `json:"species_code"`
	Status             InvoiceStatus     `json:"status" gorm:"type:varchar(10);index"`
	BoletoID           *string           `json:"boleto_id,omitempty" gorm:"type:varchar(36);index"`
	DeletedAt          *time.Time        `json:"deleted_at,omitempty" gorm:"index"`
	DeletedBy          *string           `json:"deleted_by,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// NewInvoice builds a PENDING invoice with its species code defaulted.
func NewInvoice(tenantID string, sourceKind InvoiceSourceKind, payerName, payerTaxID string, payerAddress Address, amountCents int64, issueDate time.Time, docNumber string) (*Invoice, error) {
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}
	if payerTaxID == "" {
		return nil, errors.New("payer tax id is required")
	}
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	now := time.Now()
	return &Invoice{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		SourceKind:   sourceKind,
		PayerName:    payerName,
		PayerTaxID:   payerTaxID,
		PayerAddress: payerAddress,
		AmountCents:  amountCents,
		IssueDate:    issueDate,
		DocNumber:    docNumber,
		SpeciesCode:  "DM",
		Status:       InvoiceStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// LinkToBoleto marks the invoice LINKED to the given boleto id.
func (i *Invoice) LinkToBoleto(boletoID string) {
	i.BoletoID = &boletoID
	i.Status = InvoiceStatusLinked
	i.UpdatedAt = time.Now()
}

// CanSoftDelete reports whether the invoice may be soft-deleted: only
// while not linked to a live boleto.
func (i *Invoice) CanSoftDelete() bool {
	return i.Status != InvoiceStatusLinked
}

// SoftDelete stamps the deletion timestamp and actor. A no-op if already
// deleted, since the deleted timestamp is immutable once set.
func (i *Invoice) SoftDelete(actorID string) error {
	if !i.CanSoftDelete() {
		return errors.New("invoice is linked to a live boleto")
	}
	if i.DeletedAt != nil {
		return nil
	}
	now := time.Now()
	i.DeletedAt = &now
	i.DeletedBy = &actorID
	return nil
}

// TableName specifies the table name for GORM.
func (Invoice) TableName() string {
	return "invoices"
}
