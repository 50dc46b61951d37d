package boleto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderInput carries everything the PDF layout needs beyond the barcode
// itself: the printable regions spec.md §4.3 requires (payment location,
// beneficiary identity, agency/account, document date/number, species,
// wallet, amount, instructions, and the payer block).
type RenderInput struct {
	BeneficiaryName  string
	BeneficiaryTaxID string
	Agency           string
	Account          string
	Wallet           string
	DocumentNumber   string
	IssueDate        time.Time
	DueDate          time.Time
	AmountCents      int64
	NossoNumero      string
	Instructions     string
	PayerName        string
	PayerTaxID       string
	PayerAddress     string
	PaymentLocation  string
	Barcode          *Barcode
}

// RenderPDF emits an A4 boleto page: the mandatory text regions plus an
// Interleaved-2-of-5 bar rendering of the 44-digit barcode. If the bar
// renderer fails, the digits are printed in monospace instead so the
// document still carries the full barcode value.
func RenderPDF(in RenderInput) []byte {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "RECIBO DO SACADO")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 8)
	row := func(label string, value string, w float64) {
		pdf.SetFont("Arial", "", 6)
		pdf.Cell(w, 3, label)
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 9)
		pdf.Cell(w, 5, value)
	}

	row("Local de Pagamento", in.PaymentLocation, 140)
	pdf.SetXY(150, pdf.GetY()-8)
	row("Vencimento", in.DueDate.Format("02/01/2006"), 50)
	pdf.Ln(10)

	row("Beneficiario", fmt.Sprintf("%s  CNPJ/CPF: %s", in.BeneficiaryName, in.BeneficiaryTaxID), 140)
	pdf.SetXY(150, pdf.GetY()-8)
	row("Agencia/Codigo do Beneficiario", fmt.Sprintf("%s/%s", in.Agency, in.Account), 50)
	pdf.Ln(10)

	fields := []struct {
		label string
		value string
		w     float64
	}{
		{"Data do Documento", in.IssueDate.Format("02/01/2006"), 30},
		{"Numero do Documento", in.DocumentNumber, 40},
		{"Especie Doc.", "DS", 20},
		{"Aceite", "N", 15},
		{"Data Processamento", time.Now().Format("02/01/2006"), 30},
		{"Nosso Numero", in.NossoNumero, 55},
	}
	for _, f := range fields {
		row(f.label, f.value, f.w)
		pdf.SetX(pdf.GetX())
	}
	pdf.Ln(10)

	row("Carteira", in.Wallet, 25)
	pdf.SetXY(45, pdf.GetY()-8)
	row("Valor do Documento", formatCents(in.AmountCents), 165)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 6)
	pdf.Cell(190, 3, "Instrucoes")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 8)
	pdf.MultiCell(190, 4, in.Instructions, "", "L", false)
	pdf.Ln(4)

	row("Sacado", fmt.Sprintf("%s  CNPJ/CPF: %s", in.PayerName, in.PayerTaxID), 190)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.MultiCell(190, 4, in.PayerAddress, "", "L", false)
	pdf.Ln(6)

	renderBarcode(pdf, in.Barcode.Digits)
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(190, 5, in.Barcode.DigitableLine)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fallbackDigitsPDF(in.Barcode.Digits, in.Barcode.DigitableLine)
	}
	return buf.Bytes()
}

// i2of5Widths encodes digit 0-9 as five bar widths (wide=true) per the
// Interleaved 2-of-5 symbology used for Brazilian boleto barcodes.
var i2of5Widths = [10][5]bool{
	{false, false, true, true, false},
	{true, false, false, false, true},
	{false, true, false, false, true},
	{true, true, false, false, false},
	{false, false, true, false, true},
	{true, false, true, false, false},
	{false, true, true, false, false},
	{false, false, false, true, true},
	{true, false, false, true, false},
	{false, true, false, true, false},
}

// renderBarcode draws the 44-digit Interleaved 2-of-5 symbol. On any
// drawing failure it falls back to printing the raw digits in monospace,
// per spec.md §4.3's renderer-failure fallback.
func renderBarcode(pdf *gofpdf.Fpdf, digits string) {
	defer func() {
		if r := recover(); r != nil {
			pdf.SetFont("Courier", "", 10)
			pdf.Cell(190, 8, digits)
		}
	}()

	if len(digits)%2 != 0 {
		digits = digits + "0"
	}

	const narrow = 0.33
	const wide = narrow * 2.5
	const barHeight = 13.0

	x := pdf.GetX()
	y := pdf.GetY()
	pdf.SetFillColor(0, 0, 0)

	drawBar := func(width float64, isBar bool) {
		if isBar {
			pdf.Rect(x, y, width, barHeight, "F")
		}
		x += width
	}

	// start pattern: narrow-narrow-narrow-narrow
	drawBar(narrow, true)
	drawBar(narrow, false)
	drawBar(narrow, true)
	drawBar(narrow, false)

	for i := 0; i+1 < len(digits); i += 2 {
		barsDigit := digits[i] - '0'
		spacesDigit := digits[i+1] - '0'
		barWidths := i2of5Widths[barsDigit]
		spaceWidths := i2of5Widths[spacesDigit]
		for pos := 0; pos < 5; pos++ {
			w := narrow
			if barWidths[pos] {
				w = wide
			}
			drawBar(w, true)
			w = narrow
			if spaceWidths[pos] {
				w = wide
			}
			drawBar(w, false)
		}
	}

	// stop pattern: wide-narrow-narrow
	drawBar(wide, true)
	drawBar(narrow, false)
	drawBar(narrow, true)

	pdf.SetY(y + barHeight)
}

func fallbackDigitsPDF(digits, digitableLine string) []byte {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Courier", "B", 14)
	pdf.Cell(190, 10, "BOLETO")
	pdf.Ln(14)
	pdf.SetFont("Courier", "", 10)
	pdf.Cell(190, 8, digitableLine)
	pdf.Ln(8)
	pdf.Cell(190, 8, digits)
	var buf bytes.Buffer
	pdf.Output(&buf)
	return buf.Bytes()
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}
