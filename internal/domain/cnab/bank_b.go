package cnab

import (
	"time"

	"github.com/fidc/receivables-core/internal/domain/checkdigit"
	"github.com/fidc/receivables-core/pkg/apperr"
)

// EmitBankB builds the 400-column flat remittance file: Header, one
// Detail per boleto, Trailer.
func EmitBankB(tenant Tenant, profile BankProfile, boletos []Boleto, sequenceNumber int64, now time.Time) ([]byte, error) {
	if len(boletos) == 0 {
		return nil, apperr.CNABField("boletos", "remittance must contain at least one boleto")
	}

	var lines []string

	header, err := bankBHeader(tenant, profile, sequenceNumber, now)
	if err != nil {
		return nil, err
	}
	lines = append(lines, header)

	seq := int64(2)
	for _, b := range boletos {
		detail, err := bankBDetail(tenant, profile, b, seq, now)
		if err != nil {
			return nil, err
		}
		lines = append(lines, detail)
		seq++
	}

	trailer, err := bankBTrailer(seq)
	if err != nil {
		return nil, err
	}
	lines = append(lines, trailer)

	for _, l := range lines {
		if lineWidth(l) != 400 {
			return nil, apperr.CNABField("line_width", "BANK_B record did not build to 400 columns")
		}
	}

	return joinRecords(lines), nil
}

func bankBHeader(tenant Tenant, profile BankProfile, sequenceNumber int64, now time.Time) (string, error) {
	one, err := num(1, 7)
	if err != nil {
		return "", err
	}
	six, err := num(sequenceNumber, 6)
	if err != nil {
		return "", apperr.CNABField("sequence_number", "remittance sequence overflows 6 digits")
	}
	h := "0" + "1" + "REMESSA" + "01" + text("COBRANCA", 15) +
		text(profile.Agreement, 20) + text(tenant.LegalName, 30) + "274" +
		text("BMP MONEY PLUS", 15) + now.Format("020106") + res(8) + "MX" +
		one + res(277) + six
	return h, nil
}

func bankBDetail(tenant Tenant, profile BankProfile, b Boleto, seq int64, now time.Time) (string, error) {
	cnpj, err := num(digitsToInt(tenant.TaxID), 14)
	if err != nil {
		return "", apperr.CNABField("tenant_tax_id", "tenant CNPJ overflows 14 digits")
	}

	bankID, err := bankBIdentification(profile)
	if err != nil {
		return "", err
	}

	nossoNumero, err := num(b.NossoNumero, 11)
	if err != nil {
		return "", apperr.CNABField("nosso_numero", "nosso-numero overflows 11 digits")
	}
	nnDV := checkdigit.BankBDV(profile.Wallet, itoa(b.NossoNumero))

	amount, err := num(b.AmountCents, 13)
	if err != nil {
		return "", apperr.CNABField("amount_cents", "amount overflows 13 digits")
	}

	speciesCode := "04"
	if b.Species == "DM" {
		speciesCode = "02"
	}

	instruction1 := "00"
	switch {
	case profile.ProtestDays > 0:
		instruction1 = "09"
	case profile.WriteoffDays > 0:
		instruction1 = "15"
	}
	instruction2 := "00"

	interestPerDay, err := bankBInterestPerDay(profile, b.AmountCents)
	if err != nil {
		return "", err
	}

	taxIDKind := "02"
	if len(b.PayerTaxID) <= 11 {
		taxIDKind = "01"
	}
	payerTaxID, err := num(digitsToInt(b.PayerTaxID), 14)
	if err != nil {
		return "", apperr.CNABField("payer_tax_id", "payer tax id overflows 14 digits")
	}
	zipField, err := num(digitsToInt(b.PayerZip), 8)
	if err != nil {
		return "", apperr.CNABField("payer_zip", "zip overflows 8 digits")
	}

	seqField, err := num(seq, 6)
	if err != nil {
		return "", apperr.CNABField("sequence", "detail sequence overflows 6 digits")
	}

	d := "1" + "02" + cnpj + "0" + "0" + " " + bankID + text(b.ID, 25) +
		zeros(8) + nossoNumero + string(nnDV) + zeros(10) + "2" + "N" +
		res(13) + "I" + "01" + text(b.ID, 10) + b.DueDate.Format("020106") +
		amount + "274" + "00000" + speciesCode + "N" + now.Format("020106") +
		instruction1 + instruction2 + interestPerDay + "000000" +
		zeros(13) + zeros(13) + zeros(13) + taxIDKind + payerTaxID +
		text(b.PayerName, 40) + text(b.PayerStreet, 40) + text(b.PayerHood, 12) +
		zipField + text(b.PayerCity, 15) + text(b.PayerState, 2) + res(42) +
		"0" + seqField
	return d, nil
}

func bankBIdentification(profile BankProfile) (string, error) {
	wallet, err := num(digitsToInt(profile.Wallet), 3)
	if err != nil {
		return "", apperr.CNABField("wallet", "wallet overflows 3 digits")
	}
	agency, err := num(digitsToInt(profile.Agency), 5)
	if err != nil {
		return "", apperr.CNABField("agency", "agency overflows 5 digits")
	}
	accountBody, accountDV := accountParts(profile.Account)
	accountNum, err := num(digitsToInt(accountBody), 7)
	if err != nil {
		return "", apperr.CNABField("account", "account overflows 7 digits")
	}
	return "0" + wallet + agency + accountNum + accountDV, nil
}

// bankBInterestPerDay is amount x rate / 3000, rounded half-even to cents;
// zero when no monthly rate is configured.
func bankBInterestPerDay(profile BankProfile, amountCents int64) (string, error) {
	if profile.MonthlyInterestPercent.IsZero() {
		return num(0, 13)
	}
	perDay := decimalFromCents(amountCents).Mul(profile.MonthlyInterestPercent).Div(decimalThreeThousand)
	cents := perDay.Shift(2).RoundBank(0).IntPart()
	return num(cents, 13)
}

func bankBTrailer(finalSeq int64) (string, error) {
	field, err := num(finalSeq, 6)
	if err != nil {
		return "", apperr.CNABField("final_seq", "final sequence overflows 6 digits")
	}
	return "9" + res(393) + field, nil
}
