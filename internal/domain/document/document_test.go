package document

import "testing"

func TestValidateCNPJ(t *testing.T) {
	if !ValidateCNPJ("12345678000195") {
		t.Fatal("expected valid CNPJ")
	}
	if ValidateCNPJ("11111111111111") {
		t.Fatal("all-same-digit CNPJ must be rejected")
	}
	if ValidateCNPJ("1234567800019") {
		t.Fatal("wrong-length CNPJ must be rejected")
	}
}

func TestValidateCPF(t *testing.T) {
	if !ValidateCPF("11144477735") {
		t.Fatal("expected valid CPF")
	}
	if ValidateCPF("11111111111") {
		t.Fatal("all-same-digit CPF must be rejected")
	}
}

func TestValidateDispatchesByLength(t *testing.T) {
	if !Validate("12345678000195") {
		t.Fatal("14-digit string should validate as CNPJ")
	}
	if !Validate("11144477735") {
		t.Fatal("11-digit string should validate as CPF")
	}
	if Validate("123") {
		t.Fatal("unexpected length must be invalid")
	}
}

func TestFormat(t *testing.T) {
	if got := FormatCNPJ("12345678000195"); got != "12.345.678/0001-95" {
		t.Errorf("FormatCNPJ = %q", got)
	}
	if got := FormatCPF("11144477735"); got != "111.444.777-35" {
		t.Errorf("FormatCPF = %q", got)
	}
}

func TestFormatIdempotentUnderValidateAndStrip(t *testing.T) {
	for _, raw := range []string{"12345678000195", "11144477735"} {
		formatted := Format(raw)
		stripped := Strip(formatted)
		if stripped != raw {
			t.Fatalf("Strip(Format(%q)) = %q", raw, stripped)
		}
		if !Validate(stripped) {
			t.Fatalf("Validate(Strip(Format(%q))) should hold", raw)
		}
		if Format(stripped) != formatted {
			t.Fatalf("Format is not idempotent for %q", raw)
		}
	}
}
