package boleto

import (
	"testing"
	"time"

	"github.com/fidc/receivables-core/internal/domain/entity"
)

func TestRenderPDFProducesNonEmptyDocument(t *testing.T) {
	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	bc, err := Build(entity.BankA, due, 100000, 1, "101")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := RenderPDF(RenderInput{
		BeneficiaryName:  "Fundo Exemplo FIDC",
		BeneficiaryTaxID: "12345678000195",
		Agency:           "3421",
		Account:          "13000456",
		Wallet:           "101",
		DocumentNumber:   "789",
		IssueDate:        time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		DueDate:          due,
		AmountCents:      100000,
		NossoNumero:      FormatNossoNumero(entity.BankA, "101", 1),
		Instructions:     "Nao receber apos o vencimento.",
		PayerName:        "Comprador Exemplo LTDA",
		PayerTaxID:       "98765432000100",
		PayerAddress:     "Rua das Flores, 100 - Centro - Sao Paulo/SP",
		PaymentLocation:  "Pagavel em qualquer banco ate o vencimento",
		Barcode:          bc,
	})

	if len(out) == 0 {
		t.Fatal("RenderPDF returned no bytes")
	}
	if string(out[:4]) != "%PDF" {
		t.Errorf("output does not start with a PDF header: %q", out[:4])
	}
}
