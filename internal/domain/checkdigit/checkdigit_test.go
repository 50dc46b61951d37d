package checkdigit

import "testing"

func TestMod10(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1234567890123456789", 4},
		{"0", 0},
		{"11", 7},
	}
	for _, c := range cases {
		if got := Mod10(c.in); got != c.want {
			t.Errorf("Mod10(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestMod11BarcodeFallback(t *testing.T) {
	// Result in [0,9] returns directly; result 10 or 11 falls back to r=1
	// for barcode usage.
	got := Mod11("0000000000", 9, 1)
	if got != 1 {
		t.Fatalf("Mod11 fallback = %d, want 1", got)
	}
}

func TestMod11BankANossoNumeroFallback(t *testing.T) {
	// An all-zero nosso-número sums to 0, so 11 - 0 = 11 falls back to r=0.
	nn := zeroPad("0", 12)
	got := Mod11(nn, 9, 0)
	if got != 0 {
		t.Fatalf("Mod11 fallback = %d, want 0", got)
	}
}

func TestBankBDV(t *testing.T) {
	// Values per the algorithm definition (concat wallet+nn, weights cycle
	// 2..7 right-to-left, remainder->digit/P), matching original_source's
	// calcular_dv_bmp byte for byte. See DESIGN.md for the scenario-4
	// worked-example discrepancy this resolves.
	if got := BankBDV("109", "1"); got != '9' {
		t.Errorf("BankBDV(109,1) = %q, want '9'", got)
	}
	if got := BankBDV("1", "1"); got != '2' {
		t.Errorf("BankBDV(1,1) = %q, want '2'", got)
	}
}

func TestBankBDVProducesP(t *testing.T) {
	// Confirm the 'P' branch is reachable: find an (wallet, nn) pair whose
	// remainder is 1.
	found := false
	for nn := 0; nn < 200 && !found; nn++ {
		if BankBDV("101", zeroPadForTest(nn)) == 'P' {
			found = true
		}
	}
	if !found {
		t.Fatal("no (wallet, nn) pair in range produced the 'P' remainder branch")
	}
}

func TestBankBDVRange(t *testing.T) {
	for nn := 0; nn < 50; nn++ {
		dv := BankBDV("101", zeroPadForTest(nn))
		if dv != 'P' && (dv < '0' || dv > '9') {
			t.Fatalf("BankBDV out of range: %q", dv)
		}
	}
}

func zeroPadForTest(n int) string {
	s := ""
	for n > 0 || s == "" {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}
