package cnab

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleTenant() Tenant {
	return Tenant{LegalName: "Fundo Exemplo FIDC", TaxID: "12345678000195"}
}

func sampleProfile() BankProfile {
	return BankProfile{
		Agency:                 "3421",
		Account:                "13000456-7",
		Wallet:                 "101",
		Agreement:              "998877",
		MonthlyInterestPercent: decimal.NewFromInt(0),
	}
}

func sampleBoleto(id string, nn int64) Boleto {
	return Boleto{
		ID:          id,
		NossoNumero: nn,
		DueDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		IssueDate:   time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		AmountCents: 100000,
		PayerName:   "Comprador Exemplo LTDA",
		PayerTaxID:  "98765432000100",
		PayerStreet: "Rua das Flores, 100",
		PayerHood:   "Centro",
		PayerCity:   "Sao Paulo",
		PayerState:  "SP",
		PayerZip:    "01310100",
		Species:     "DS",
	}
}

func TestEmitBankAScenario5(t *testing.T) {
	out, err := EmitBankA(sampleTenant(), sampleProfile(), []Boleto{sampleBoleto("1", 1)}, 1, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EmitBankA: %v", err)
	}

	lines := strings.Split(string(out), "\r\n")
	if len(lines) != 6 {
		t.Fatalf("line count = %d, want 6", len(lines))
	}
	for i, l := range lines {
		if len(l) != 240 {
			t.Errorf("line %d length = %d, want 240", i, len(l))
		}
	}
	if !strings.HasPrefix(lines[0], "03300000") {
		t.Errorf("file header prefix = %q, want 03300000...", lines[0][:8])
	}

	trailer := lines[len(lines)-1]
	counter := trailer[len(trailer)-6:]
	if counter != "000006" {
		t.Errorf("file trailer counter = %q, want 000006", counter)
	}
}

func TestEmitBankBScenario6(t *testing.T) {
	boletos := []Boleto{sampleBoleto("1", 1), sampleBoleto("2", 2)}
	out, err := EmitBankB(sampleTenant(), sampleProfile(), boletos, 1, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("EmitBankB: %v", err)
	}

	lines := strings.Split(string(out), "\r\n")
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(lines))
	}
	for i, l := range lines {
		if len(l) != 400 {
			t.Errorf("line %d length = %d, want 400", i, len(l))
		}
	}

	trailer := lines[len(lines)-1]
	if !strings.HasPrefix(trailer, "9") {
		t.Errorf("trailer record type = %q, want 9", trailer[:1])
	}
	seq := trailer[len(trailer)-6:]
	if seq != "000004" {
		t.Errorf("trailer sequence = %q, want 000004", seq)
	}
}

func TestCNABOutputIsLatin1Safe(t *testing.T) {
	tenant := sampleTenant()
	tenant.LegalName = "Fundaçao Exemplo"
	out, err := EmitBankA(tenant, sampleProfile(), []Boleto{sampleBoleto("1", 1)}, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("EmitBankA: %v", err)
	}
	for _, b := range out {
		if b > 255 {
			t.Fatalf("byte %d exceeds Latin-1 range", b)
		}
	}

	// An accented legal name is 2 UTF-8 bytes per rune but 1 Latin-1 byte
	// once encoded; every record must still land on exactly 240 bytes.
	lines := strings.Split(string(out), "\r\n")
	for i, l := range lines {
		if len(l) != 240 {
			t.Errorf("line %d length = %d, want 240", i, len(l))
		}
	}
}

func TestEmitBankARejectsEmptyBatch(t *testing.T) {
	_, err := EmitBankA(sampleTenant(), sampleProfile(), nil, 1, time.Now().UTC())
	if err == nil {
		t.Fatal("expected an error for an empty boleto batch")
	}
}

func TestEmitBankBInterestAccrual(t *testing.T) {
	profile := sampleProfile()
	profile.MonthlyInterestPercent = decimal.NewFromFloat(3.0)
	out, err := EmitBankB(sampleTenant(), profile, []Boleto{sampleBoleto("1", 1)}, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("EmitBankB: %v", err)
	}
	lines := strings.Split(string(out), "\r\n")
	detail := lines[1]
	// interest-per-day occupies positions 161-173 (1-indexed), i.e. [160:173).
	interestField := detail[160:173]
	if interestField == "0000000000000" {
		t.Errorf("expected a non-zero interest field when a monthly rate is configured, got %q", interestField)
	}
}
