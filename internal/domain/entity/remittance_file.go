package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RemittanceFile is the result of one emit_remittance call: an opaque
// byte sequence plus the filename and sequential number scoped to
// (Tenant, BankKind).
type RemittanceFile struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID   string    `json:"tenant_id" gorm:"type:varchar(36);index"`
	Bank       BankKind  `json:"bank" gorm:"type:varchar(10);index"`
	Sequence   int64     `json:"sequence"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"storage_key"` // opaque path in the blob store
	LineCount  int       `json:"line_count"`
	CreatedAt  time.Time `json:"created_at"`

	// Content is the generated bytes; not persisted as a column, carried
	// only until the storage layer writes it to the blob store.
	Content []byte `json:"-" gorm:"-"`
}

// NewRemittanceFile builds the filename per the CB+DDMM+seq(4)+.REM
// convention and assigns a fresh ID.
func NewRemittanceFile(tenantID string, bank BankKind, sequence int64, generatedAt time.Time, content []byte, lineCount int) *RemittanceFile {
	filename := fmt.Sprintf("CB%s%04d.REM", generatedAt.Format("0201"), sequence%10000)
	return &RemittanceFile{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Bank:      bank,
		Sequence:  sequence,
		Filename:  filename,
		LineCount: lineCount,
		Content:   content,
		CreatedAt: generatedAt,
	}
}

// TableName specifies the table name for GORM.
func (RemittanceFile) TableName() string {
	return "remittance_files"
}
