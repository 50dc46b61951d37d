package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tenant is an issuing party: the cedente on whose behalf boletos are
// drawn and remittances emitted. A Tenant is owned by no one; every other
// entity in the core references one.
type Tenant struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	DisplayName string    `json:"display_name"`
	LegalName   string    `json:"legal_name"`
	TaxID       string    `json:"tax_id" gorm:"column:tax_id;uniqueIndex"` // CNPJ, digits only
	Address     Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTenant validates the minimum fields and assigns a fresh ID.
func NewTenant(displayName, legalName, taxID string, address Address) (*Tenant, error) {
	if legalName == "" {
		return nil, errors.New("legal name is required")
	}
	if taxID == "" {
		return nil, errors.New("tax id is required")
	}
	now := time.Now()
	return &Tenant{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		LegalName:   legalName,
		TaxID:       taxID,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TableName specifies the table name for GORM.
func (Tenant) TableName() string {
	return "tenants"
}
