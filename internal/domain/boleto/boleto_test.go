package boleto

import (
	"strings"
	"testing"
	"time"

	"github.com/fidc/receivables-core/internal/domain/checkdigit"
	"github.com/fidc/receivables-core/internal/domain/entity"
)

func TestBuildScenario3(t *testing.T) {
	due := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	bc, err := Build(entity.BankA, due, 100000, 1, "101")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(bc.Digits) != 44 {
		t.Fatalf("barcode length = %d, want 44", len(bc.Digits))
	}
	if bc.Digits[:3] != "033" {
		t.Errorf("bank code = %q, want 033", bc.Digits[:3])
	}
	if bc.Digits[3] != '9' {
		t.Errorf("currency = %c, want 9", bc.Digits[3])
	}

	withoutDV := bc.Digits[:4] + bc.Digits[5:]
	wantDV := checkdigit.Mod11(withoutDV, 9, 1)
	gotDV := int(bc.Digits[4] - '0')
	if gotDV != wantDV {
		t.Errorf("position-5 DV = %d, want %d", gotDV, wantDV)
	}

	if len(bc.DigitableLine) != 54 {
		t.Fatalf("digitable line length = %d, want 54", len(bc.DigitableLine))
	}
	if strings.Count(bc.DigitableLine, " ") != 2 {
		t.Errorf("digitable line has %d spaces, want 2", strings.Count(bc.DigitableLine, " "))
	}
	if strings.Count(bc.DigitableLine, ".") != 3 {
		t.Errorf("digitable line has %d dots, want 3", strings.Count(bc.DigitableLine, "."))
	}
}

func TestDigitableLineDVsVerifyAndRecompose(t *testing.T) {
	due := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	bc, err := Build(entity.BankB, due, 543210, 77, "109")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	groups := strings.Fields(strings.NewReplacer(".", "").Replace(bc.DigitableLine))
	if len(groups) != 5 {
		t.Fatalf("expected 5 groups, got %d: %v", len(groups), groups)
	}

	for i, g := range groups[:3] {
		data, dv := g[:len(g)-1], g[len(g)-1]
		wantDV := byte('0' + checkdigit.Mod10(data))
		if dv != wantDV {
			t.Errorf("group %d DV = %c, want %c", i+1, dv, wantDV)
		}
	}

	recomposed := groups[0][:len(groups[0])-1] + groups[1][:len(groups[1])-1] + groups[2][:len(groups[2])-1]
	freeField := recomposed[4:]
	wantBarcode := recomposed[:4] + groups[3] + groups[4] + freeField
	if wantBarcode != bc.Digits {
		t.Errorf("recomposed barcode mismatch:\n got %s\nwant %s", wantBarcode, bc.Digits)
	}
}

func TestFormatNossoNumeroBankA(t *testing.T) {
	got := FormatNossoNumero(entity.BankA, "101", 1)
	want := "000000000001-" + formatDigit(checkdigit.Mod11("000000000001", 9, 0))
	if got != want {
		t.Errorf("FormatNossoNumero(BankA) = %q, want %q", got, want)
	}
}

func TestFormatNossoNumeroBankB(t *testing.T) {
	got := FormatNossoNumero(entity.BankB, "109", 1)
	want := "00000000001-9"
	if got != want {
		t.Errorf("FormatNossoNumero(BankB) = %q, want %q", got, want)
	}
}

func TestBuildRejectsDueDateBeforeBaseDate(t *testing.T) {
	_, err := Build(entity.BankA, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 1000, 1, "101")
	if err == nil {
		t.Fatal("expected an error for a due date preceding the Febraban base date")
	}
}

func formatDigit(d int) string {
	return string(rune('0' + d))
}
