// Package boleto builds the Febraban barcode, digitable line, and
// nosso-número presentation for a bank slip, and renders the printable
// PDF representation.
package boleto

import (
	"fmt"
	"strings"
	"time"

	"github.com/fidc/receivables-core/internal/domain/checkdigit"
	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/pkg/apperr"
)

var febraboBaseDate = time.Date(1997, 10, 7, 0, 0, 0, 0, time.UTC)

// Barcode is the result of building the 44-digit barcode and its
// 47-digit digitable-line presentation.
type Barcode struct {
	Digits        string // 44 digits
	DigitableLine string // 47 digits plus separators
}

// Build constructs the barcode and digitable line for a boleto. amountCents
// must be positive; dueDate must not precede the Febraban base date.
func Build(bank entity.BankKind, dueDate time.Time, amountCents int64, nossoNumero int64, wallet string) (*Barcode, error) {
	if amountCents <= 0 {
		return nil, apperr.New(apperr.KindMissingRequired, "amount_cents")
	}
	daysDiff := int(dueDate.Truncate(24 * time.Hour).Sub(febraboBaseDate.Truncate(24 * time.Hour)).Hours() / 24)
	if daysDiff < 0 {
		return nil, apperr.New(apperr.KindMalformed, "due date precedes the Febraban base date 1997-10-07")
	}
	if daysDiff > 9999 {
		return nil, apperr.New(apperr.KindMalformed, "due-date factor overflows 4 digits")
	}
	fatorVencimento := zeroPad(fmt.Sprintf("%d", daysDiff), 4)
	amountField := zeroPad(fmt.Sprintf("%d", amountCents), 10)

	freeField, err := freeField(bank, wallet, nossoNumero)
	if err != nil {
		return nil, err
	}

	bankCode := bank.Code()
	barcodeNoDV := bankCode + "9" + fatorVencimento + amountField + freeField
	dv := checkdigit.Mod11(barcodeNoDV, 9, 1)

	digits := bankCode + "9" + fmt.Sprintf("%d", dv) + fatorVencimento + amountField + freeField
	if len(digits) != 44 {
		return nil, apperr.New(apperr.KindCNABBuildError, "barcode")
	}

	line := digitableLine(bankCode, freeField, dv, fatorVencimento, amountField)

	return &Barcode{Digits: digits, DigitableLine: line}, nil
}

// freeField builds the 25-digit free field (barcode positions 20-44):
// literal '9' + wallet padded to 3 + nosso-número padded to 12 + trailing
// zeros to reach 25 digits total. Every bank kind gets this same layout;
// the bank argument does not change it.
func freeField(bank entity.BankKind, wallet string, nossoNumero int64) (string, error) {
	walletField := zeroPad(wallet, 3)
	if len(walletField) > 3 {
		return "", apperr.New(apperr.KindCNABBuildError, "wallet")
	}
	nnField := zeroPad(fmt.Sprintf("%d", nossoNumero), 12)
	if len(nnField) > 12 {
		return "", apperr.New(apperr.KindCNABBuildError, "nosso_numero")
	}
	field := "9" + walletField + nnField
	return field + strings.Repeat("0", 25-len(field)), nil
}

func digitableLine(bankCode, freeField string, generalDV int, fatorVencimento, amountField string) string {
	field1Data := bankCode + "9" + freeField[0:5]
	field1 := field1Data + fmt.Sprintf("%d", checkdigit.Mod10(field1Data))

	field2Data := freeField[5:15]
	field2 := field2Data + fmt.Sprintf("%d", checkdigit.Mod10(field2Data))

	field3Data := freeField[15:25]
	field3 := field3Data + fmt.Sprintf("%d", checkdigit.Mod10(field3Data))

	field4 := fmt.Sprintf("%d", generalDV)
	field5 := fatorVencimento + amountField

	return fmt.Sprintf("%s.%s %s.%s %s.%s %s %s",
		field1[:5], field1[5:],
		field2[:5], field2[5:],
		field3[:5], field3[5:],
		field4, field5)
}

// FormatNossoNumero renders the bank-specific presentation of an
// allocated nosso-número: BANK_A zero-pads to 12 digits and appends the
// mod11(base=9,r=0) check digit; BANK_B zero-pads to 11 digits and
// appends C1's bank_b_nn_dv(wallet, nn).
func FormatNossoNumero(bank entity.BankKind, wallet string, nossoNumero int64) string {
	switch bank {
	case entity.BankA:
		nn := zeroPad(fmt.Sprintf("%d", nossoNumero), 12)
		dv := checkdigit.Mod11(nn, 9, 0)
		return fmt.Sprintf("%s-%d", nn, dv)
	case entity.BankB:
		nn := zeroPad(fmt.Sprintf("%d", nossoNumero), 11)
		dv := checkdigit.BankBDV(wallet, fmt.Sprintf("%d", nossoNumero))
		return fmt.Sprintf("%s-%c", nn, dv)
	default:
		return ""
	}
}

func zeroPad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat("0", n-len(s)) + s
}
