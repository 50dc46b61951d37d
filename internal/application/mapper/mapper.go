// Package mapper converts between domain entities and the application
// layer's DTOs.
package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fidc/receivables-core/internal/application/dto"
	"github.com/fidc/receivables-core/internal/domain/entity"
)

// ToAddress converts an AddressRequest DTO to entity.Address.
func ToAddress(a dto.AddressRequest) entity.Address {
	return entity.Address{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

// ToAddressDTO converts entity.Address to the outward-facing DTO.
func ToAddressDTO(a entity.Address) dto.AddressRequest {
	return dto.AddressRequest{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

// ToTenantResponse converts a Tenant entity to its response DTO.
func ToTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:          t.ID,
		DisplayName: t.DisplayName,
		LegalName:   t.LegalName,
		TaxID:       t.TaxID,
		Address:     ToAddressDTO(t.Address),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// ToBankProfileResponse converts a BankProfile entity to its response DTO.
func ToBankProfileResponse(p *entity.BankProfile) dto.BankProfileResponse {
	return dto.BankProfileResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Bank:           string(p.Bank),
		Agency:         p.Agency,
		Account:        p.Account,
		Wallet:         p.Wallet,
		Agreement:      p.Agreement,
		CounterCurrent: p.CounterCurrent,
		CounterMin:     p.CounterMin,
		CounterMax:     p.CounterMax,
		Active:         p.Active,
	}
}

// ParseDecimal parses an optional decimal string, defaulting to zero on an
// empty input rather than erroring — most bank profiles carry no interest
// rate at all.
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToInvoiceResponse converts an Invoice entity to its response DTO.
func ToInvoiceResponse(i *entity.Invoice) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		ID:          i.ID,
		TenantID:    i.TenantID,
		SourceKind:  string(i.SourceKind),
		PayerName:   i.PayerName,
		PayerTaxID:  i.PayerTaxID,
		AmountCents: i.AmountCents,
		IssueDate:   i.IssueDate.Format("2006-01-02"),
		DocNumber:   i.DocNumber,
		SpeciesCode: i.SpeciesCode,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
	}
	if i.BoletoID != nil {
		resp.BoletoID = *i.BoletoID
	}
	return resp
}

// ToBoletoResponse converts a Boleto entity to its response DTO.
func ToBoletoResponse(b *entity.Boleto) dto.BoletoResponse {
	return dto.BoletoResponse{
		ID:                   b.ID,
		TenantID:             b.TenantID,
		Bank:                 string(b.Bank),
		PayerName:            b.PayerName,
		PayerTaxID:           b.PayerTaxID,
		AmountCents:          b.AmountCents,
		DueDate:              b.DueDate.Format("2006-01-02"),
		NossoNumero:          b.NossoNumero,
		NossoNumeroFormatted: b.NossoNumeroFormatted,
		Barcode:              b.Barcode,
		DigitableLine:        b.DigitableLine,
		Status:               string(b.Status),
	}
}

// ToRemittanceResponse converts a RemittanceFile entity to its response
// DTO.
func ToRemittanceResponse(f *entity.RemittanceFile) dto.RemittanceResponse {
	return dto.RemittanceResponse{
		ID:        f.ID,
		TenantID:  f.TenantID,
		Bank:      string(f.Bank),
		Sequence:  f.Sequence,
		Filename:  f.Filename,
		LineCount: f.LineCount,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
