// Package cnab builds Febraban remittance files: the BANK_A 240-column
// layered dialect and the BANK_B 400-column flat dialect. Both emitters
// are pure functions of their explicit inputs — no database access, no
// implicit clock beyond what is passed in.
package cnab

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/fidc/receivables-core/pkg/apperr"
)

// lineWidth counts the bytes the line will occupy once toLatin1 shrinks
// it to one byte per rune — not len(l), which counts UTF-8 bytes and
// under-reports the accented characters text() still allows through.
func lineWidth(l string) int {
	return utf8.RuneCountInString(l)
}

// Tenant is the minimal cedente snapshot a remittance file needs.
type Tenant struct {
	LegalName string
	TaxID     string // digits only
}

// BankProfile is the minimal per-(tenant, bank) configuration snapshot a
// remittance file needs; it never carries the counter triple, which is
// C4's concern, not C5's.
type BankProfile struct {
	Agency           string
	Account          string // digits, optional "-DV" suffix
	Wallet           string
	Agreement        string
	TransmissionCode string // overrides the derived BANK_A transmission code when non-empty

	MonthlyInterestPercent decimal.Decimal
	ProtestDays            int
	WriteoffDays           int
}

// Boleto is the per-record snapshot a remittance line needs, including
// the address of its linked invoice's payer (there is no live object
// graph to walk at emission time).
type Boleto struct {
	ID          string
	NossoNumero int64
	DueDate     time.Time
	IssueDate   time.Time
	AmountCents int64

	PayerName   string
	PayerTaxID  string // digits only
	PayerStreet string
	PayerHood   string
	PayerCity   string
	PayerState  string
	PayerZip    string // digits only

	// Species is "DM" or "DS"; anything else falls back to "DS"'s code.
	Species string
}

func accountParts(account string) (body string, dv string) {
	idx := strings.IndexByte(account, '-')
	if idx < 0 {
		return account, "0"
	}
	suffix := account[idx+1:]
	if suffix == "" {
		return account[:idx], "0"
	}
	return account[:idx], suffix[:1]
}

// text truncates v to n runes then space-pads right to n. Width is
// counted in runes, not bytes, because toLatin1 later shrinks every
// multi-byte UTF-8 rune (ã, ç, õ...) to a single Latin-1 byte; padding
// on byte length here would under-pad the line once that shrink happens.
func text(v string, n int) string {
	r := []rune(v)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + strings.Repeat(" ", n-len(r))
}

// num renders v (already an integer quantity) zero-padded left to n
// digits; it is a CNAB_BUILD_ERROR for the caller to overflow n.
func num(v int64, n int) (string, error) {
	if v < 0 {
		return "", apperr.CNABField("num", "negative value is not representable")
	}
	s := itoa(v)
	if len(s) > n {
		return "", apperr.CNABField("num", "value overflows field width")
	}
	return strings.Repeat("0", n-len(s)) + s, nil
}

// numDecimalCents renders a decimal value (already expressed as a
// shopspring decimal fraction of currency units) as integer cents
// zero-padded to n digits, truncating (not rounding) toward zero — the
// instruction-value fields are derived quantities, not ledger entries.
func numDecimalCents(v decimal.Decimal, n int) (string, error) {
	cents := v.Shift(2).Truncate(0).IntPart()
	return num(cents, n)
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	digits := make([]byte, 0, 20)
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

func res(n int) string {
	return strings.Repeat(" ", n)
}

func zeros(n int) string {
	return strings.Repeat("0", n)
}

// toLatin1 transcodes a UTF-8 string to ISO-8859-1 bytes. ISO-8859-1
// maps Unicode code points 0-255 byte for byte, so this is a direct
// per-rune cast with '?' substituted for anything outside that range.
func toLatin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 255 {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return out
}

func joinRecords(lines []string) []byte {
	return toLatin1(strings.Join(lines, "\r\n"))
}

var (
	decimalHundred      = decimal.NewFromInt(100)
	decimalThirty       = decimal.NewFromInt(30)
	decimalThreeThousand = decimal.NewFromInt(3000)
)

func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// digitsToInt parses a digits-only string (possibly empty) as an
// integer, ignoring anything non-digit a caller failed to strip.
func digitsToInt(s string) int64 {
	var v int64
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		v = v*10 + int64(r-'0')
	}
	return v
}

// splitZip divides an 8-digit CEP into its 5-digit prefix and 3-digit
// suffix, per the BANK_A SegmentQ zip fields.
func splitZip(zip string) (prefix, suffix string) {
	if len(zip) <= 5 {
		return zip, ""
	}
	return zip[:5], zip[5:]
}
