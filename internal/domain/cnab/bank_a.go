package cnab

import (
	"time"

	"github.com/fidc/receivables-core/pkg/apperr"
)

// EmitBankA builds the 240-column layered remittance file: FileHeader,
// BatchHeader, (SegmentP, SegmentQ)* per boleto, BatchTrailer,
// FileTrailer. sequenceNumber is the per-(tenant, bank) remittance
// sequence this file occupies.
func EmitBankA(tenant Tenant, profile BankProfile, boletos []Boleto, sequenceNumber int64, now time.Time) ([]byte, error) {
	if len(boletos) == 0 {
		return nil, apperr.CNABField("boletos", "remittance must contain at least one boleto")
	}

	transmissionCode, err := bankATransmissionCode(profile)
	if err != nil {
		return nil, err
	}

	cnpj, err := num(digitsToInt(tenant.TaxID), 15)
	if err != nil {
		return nil, apperr.CNABField("tenant_tax_id", "tenant CNPJ overflows 15 digits")
	}

	var lines []string

	fileHeader, err := bankAFileHeader(cnpj, transmissionCode, tenant.LegalName, sequenceNumber, now)
	if err != nil {
		return nil, err
	}
	lines = append(lines, fileHeader)

	batchHeader, err := bankABatchHeader(cnpj, transmissionCode, tenant.LegalName, sequenceNumber, now)
	if err != nil {
		return nil, err
	}
	lines = append(lines, batchHeader)

	seq := int64(1)
	for _, b := range boletos {
		segP, err := bankASegmentP(profile, b, seq)
		if err != nil {
			return nil, err
		}
		lines = append(lines, segP)
		seq++

		segQ, err := bankASegmentQ(b, seq)
		if err != nil {
			return nil, err
		}
		lines = append(lines, segQ)
		seq++
	}

	batchTrailer, err := bankABatchTrailer(seq + 1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, batchTrailer)

	fileTrailer, err := bankAFileTrailer(int64(len(lines)) + 1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, fileTrailer)

	for _, l := range lines {
		if lineWidth(l) != 240 {
			return nil, apperr.CNABField("line_width", "BANK_A record did not build to 240 columns")
		}
	}

	return joinRecords(lines), nil
}

func bankATransmissionCode(profile BankProfile) (string, error) {
	if profile.TransmissionCode != "" {
		code, err := num(digitsToInt(profile.TransmissionCode), 15)
		if err != nil {
			return "", apperr.CNABField("transmission_code", "transmission code overflows 15 digits")
		}
		return code, nil
	}
	agency, err := num(digitsToInt(profile.Agency), 4)
	if err != nil {
		return "", apperr.CNABField("agency", "agency overflows 4 digits")
	}
	accountBody, accountDV := accountParts(profile.Account)
	accountNum, err := num(digitsToInt(accountBody), 9)
	if err != nil {
		return "", apperr.CNABField("account", "account overflows 9 digits")
	}
	return agency + " " + accountNum + accountDV, nil
}

func bankAFileHeader(cnpj, transmissionCode, legalName string, sequenceNumber int64, now time.Time) (string, error) {
	seqField, err := num(sequenceNumber, 6)
	if err != nil {
		return "", apperr.CNABField("sequence_number", "remittance sequence overflows 6 digits")
	}
	h := "033" + "0000" + "0" + res(8) + "2" + cnpj + transmissionCode + res(25) +
		text(legalName, 30) + text("BANCO SANTANDER", 30) + res(10) + "1" +
		now.Format("02012006") + res(6) + seqField + "040" + res(74)
	return h, nil
}

func bankABatchHeader(cnpj, transmissionCode, legalName string, sequenceNumber int64, now time.Time) (string, error) {
	remittanceNum, err := num(sequenceNumber, 8)
	if err != nil {
		return "", apperr.CNABField("sequence_number", "remittance sequence overflows 8 digits")
	}
	h := "033" + "0001" + "1" + "R" + "01" + res(2) + "030" + " " + "2" + cnpj +
		res(20) + text(transmissionCode, 15) + res(5) + text(legalName, 30) +
		res(40) + res(40) + remittanceNum + now.Format("02012006") + res(41)
	return h, nil
}

func bankASegmentP(profile BankProfile, b Boleto, seq int64) (string, error) {
	seqField, err := num(seq, 5)
	if err != nil {
		return "", apperr.CNABField("sequence", "segment sequence overflows 5 digits")
	}
	agency, err := num(digitsToInt(profile.Agency), 4)
	if err != nil {
		return "", apperr.CNABField("agency", "agency overflows 4 digits")
	}
	accountBody, accountDV := accountParts(profile.Account)
	accountNum, err := num(digitsToInt(accountBody), 9)
	if err != nil {
		return "", apperr.CNABField("account", "account overflows 9 digits")
	}
	nossoNumero, err := num(b.NossoNumero, 13)
	if err != nil {
		return "", apperr.CNABField("nosso_numero", "nosso-numero overflows 13 digits")
	}
	amount, err := num(b.AmountCents, 15)
	if err != nil {
		return "", apperr.CNABField("amount_cents", "amount overflows 15 digits")
	}

	interestBlock, err := bankAInterestBlock(profile, b.AmountCents)
	if err != nil {
		return "", err
	}
	protestBlock := bankAProtestBlock(profile)
	writeoffBlock := bankAWriteoffBlock(profile)

	seg := "033" + "0001" + "3" + seqField + "P" + " " + "01" + agency + "0" +
		accountNum + accountDV + zeros(9) + "0" + res(2) + nossoNumero +
		"5" + "1" + "1" + res(2) + text(b.ID, 15) + b.DueDate.Format("02012006") +
		amount + "0000" + "0" + " " + "04" + "N" + b.IssueDate.Format("02012006") +
		interestBlock + "0" + zeros(8) + zeros(15) /* discount block */ +
		zeros(15) /* IOF */ + zeros(15) /* abatement */ +
		text(b.ID, 25) + protestBlock + writeoffBlock + "09" + res(11)
	return seg, nil
}

func bankAInterestBlock(profile BankProfile, amountCents int64) (string, error) {
	if profile.MonthlyInterestPercent.IsZero() {
		return "0" + zeros(8) + zeros(15), nil
	}
	perDay := decimalFromCents(amountCents).Mul(profile.MonthlyInterestPercent).Div(decimalHundred).Div(decimalThirty)
	field, err := numDecimalCents(perDay, 15)
	if err != nil {
		return "", err
	}
	return "1" + zeros(8) + field, nil
}

func bankAProtestBlock(profile BankProfile) string {
	if profile.ProtestDays > 0 {
		d, _ := num(int64(profile.ProtestDays), 2)
		return "1" + d
	}
	return "3" + "00"
}

func bankAWriteoffBlock(profile BankProfile) string {
	if profile.WriteoffDays > 0 {
		d, _ := num(int64(profile.WriteoffDays), 2)
		return "1" + "0" + d
	}
	return "1" + "0" + "90"
}

func bankASegmentQ(b Boleto, seq int64) (string, error) {
	seqField, err := num(seq, 5)
	if err != nil {
		return "", apperr.CNABField("sequence", "segment sequence overflows 5 digits")
	}
	taxIDKind := "2"
	if len(b.PayerTaxID) <= 11 {
		taxIDKind = "1"
	}
	payerTaxID, err := num(digitsToInt(b.PayerTaxID), 15)
	if err != nil {
		return "", apperr.CNABField("payer_tax_id", "payer tax id overflows 15 digits")
	}
	zip := b.PayerZip
	zip5, zip3 := splitZip(zip)
	zip5Field, err := num(digitsToInt(zip5), 5)
	if err != nil {
		return "", apperr.CNABField("payer_zip", "zip prefix overflows 5 digits")
	}
	zip3Field, err := num(digitsToInt(zip3), 3)
	if err != nil {
		return "", apperr.CNABField("payer_zip", "zip suffix overflows 3 digits")
	}

	seg := "033" + "0001" + "3" + seqField + "Q" + " " + "01" + taxIDKind +
		payerTaxID + text(b.PayerName, 40) + text(b.PayerStreet, 40) +
		text(b.PayerHood, 15) + zip5Field + zip3Field + text(b.PayerCity, 15) +
		text(b.PayerState, 2) + "0" + zeros(15) + res(40) + res(3) + res(3) +
		res(3) + res(3) + res(19)
	return seg, nil
}

func bankABatchTrailer(recordsInBatch int64) (string, error) {
	field, err := num(recordsInBatch, 6)
	if err != nil {
		return "", apperr.CNABField("records_in_batch", "batch record count overflows 6 digits")
	}
	return "033" + "0001" + "5" + res(9) + field + res(217), nil
}

func bankAFileTrailer(totalLines int64) (string, error) {
	one, _ := num(1, 6)
	total, err := num(totalLines, 6)
	if err != nil {
		return "", apperr.CNABField("total_lines", "file line count overflows 6 digits")
	}
	return "033" + "9999" + "9" + res(9) + one + total + res(211), nil
}
