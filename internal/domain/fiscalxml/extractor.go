// Package fiscalxml extracts payer identity, address, amount, issue date,
// and document number from Brazilian fiscal XML documents (NFe and CTe).
// It never retrieves anything over the network; it only walks bytes
// already in hand.
package fiscalxml

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/fidc/receivables-core/internal/domain/entity"
	"github.com/fidc/receivables-core/pkg/apperr"
)

// Kind identifies which fiscal document family was detected.
type Kind string

const (
	KindNFe Kind = "NFE"
	KindCTe Kind = "CTE"
)

// Result is the structured record extracted from one fiscal document.
type Result struct {
	Kind        Kind
	PayerName   string
	PayerTaxID  string
	Address     entity.Address
	AmountCents int64
	IssueDate   time.Time
	DocNumber   string
}

// taker role codes from the CTe "toma3" selector: 0=sender, 1=expediter,
// 2=receiver, 3=destinatary. Role 4 means an inline toma4 party.
var takerRoleTag = map[string]string{
	"0": "rem",
	"1": "exped",
	"2": "receb",
	"3": "dest",
}

// Extract autodetects NFe vs CTe from the root element name and extracts
// the structured record. It fails with KindMalformed on non-parseable
// XML, KindUnknownKind on an unrecognized root, and KindMissingRequired
// when a field the downstream boleto/CNAB pipeline needs is absent.
func Extract(data []byte) (*Result, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformed, "xml did not parse", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, apperr.New(apperr.KindMalformed, "xml has no root element")
	}

	tagLower := strings.ToLower(root.Tag)
	switch {
	case strings.Contains(tagLower, "nfe"):
		return extractNFe(root)
	case strings.Contains(tagLower, "cte"):
		return extractCTe(root)
	default:
		return nil, apperr.New(apperr.KindUnknownKind, "root element is neither NFe nor CTe: "+root.Tag)
	}
}

func extractNFe(root *etree.Element) (*Result, error) {
	dest := root.FindElement(".//dest")
	if dest == nil {
		return nil, apperr.New(apperr.KindMissingRequired, "dest")
	}

	name := elementText(dest, "xNome")
	if name == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "dest/xNome")
	}

	taxID := firstNonEmpty(elementText(dest, "CNPJ"), elementText(dest, "CPF"))
	if taxID == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "dest/CNPJ|CPF")
	}

	address := extractAddress(dest.SelectElement("enderDest"))

	amountText := findText(root, ".//total/ICMSTot/vNF")
	if amountText == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "total/ICMSTot/vNF")
	}
	amountCents, err := toCents(amountText)
	if err != nil {
		return nil, err
	}

	dateText := firstNonEmpty(findText(root, ".//ide/dhEmi"), findText(root, ".//ide/dEmi"))
	if dateText == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "ide/dhEmi|dEmi")
	}
	issueDate, err := parseDate(dateText)
	if err != nil {
		return nil, err
	}

	docNumber := findText(root, ".//ide/nNF")
	if docNumber == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "ide/nNF")
	}

	return &Result{
		Kind:        KindNFe,
		PayerName:   name,
		PayerTaxID:  taxID,
		Address:     address,
		AmountCents: amountCents,
		IssueDate:   issueDate,
		DocNumber:   docNumber,
	}, nil
}

func extractCTe(root *etree.Element) (*Result, error) {
	amountText := findText(root, ".//vPrest/vTPrest")
	if amountText == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "vPrest/vTPrest")
	}
	amountCents, err := toCents(amountText)
	if err != nil {
		return nil, err
	}

	dateText := findText(root, ".//ide/dhEmi")
	if dateText == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "ide/dhEmi")
	}
	issueDate, err := parseDate(dateText)
	if err != nil {
		return nil, err
	}

	docNumber := findText(root, ".//ide/nCT")
	if docNumber == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "ide/nCT")
	}

	name, taxID, address := resolveCTeTaker(root)
	if name == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "taker name")
	}
	if taxID == "" {
		return nil, apperr.New(apperr.KindMissingRequired, "taker tax id")
	}

	return &Result{
		Kind:        KindCTe,
		PayerName:   name,
		PayerTaxID:  taxID,
		Address:     address,
		AmountCents: amountCents,
		IssueDate:   issueDate,
		DocNumber:   docNumber,
	}, nil
}

// resolveCTeTaker implements the taker selector: toma3's role code remaps
// to a named role node (sender/expediter/receiver/destinatary); failing
// that, an explicit inline toma4 party; failing that, the destinatary.
func resolveCTeTaker(root *etree.Element) (name, taxID string, address entity.Address) {
	if toma3 := root.FindElement(".//ide/toma3"); toma3 != nil {
		if roleCode := elementText(toma3, "toma"); roleCode != "" {
			if roleTag, ok := takerRoleTag[roleCode]; ok {
				if roleNode := root.FindElement(".//" + roleTag); roleNode != nil {
					if n := elementText(roleNode, "xNome"); n != "" {
						return n, firstNonEmpty(elementText(roleNode, "CNPJ"), elementText(roleNode, "CPF")), extractAddress(resolveAddressNode(roleNode))
					}
				}
			}
		}
	}

	if toma4 := root.FindElement(".//ide/toma4"); toma4 != nil {
		if n := elementText(toma4, "xNome"); n != "" {
			return n, firstNonEmpty(elementText(toma4, "CNPJ"), elementText(toma4, "CPF")), extractAddress(resolveAddressNode(toma4))
		}
	}

	if dest := root.FindElement(".//dest"); dest != nil {
		if n := elementText(dest, "xNome"); n != "" {
			return n, elementText(dest, "CNPJ"), extractAddress(resolveAddressNode(dest))
		}
	}

	return "", "", entity.Address{}
}

// resolveAddressNode picks whichever address child is present on a CTe
// party node: enderToma, enderDest, or enderReme.
func resolveAddressNode(node *etree.Element) *etree.Element {
	for _, tag := range []string{"enderToma", "enderDest", "enderReme"} {
		if el := node.SelectElement(tag); el != nil {
			return el
		}
	}
	return nil
}

func extractAddress(ender *etree.Element) entity.Address {
	if ender == nil {
		return entity.Address{}
	}
	return entity.Address{
		Street:       elementText(ender, "xLgr"),
		Number:       elementText(ender, "nro"),
		Neighborhood: elementText(ender, "xBairro"),
		City:         elementText(ender, "xMun"),
		State:        elementText(ender, "UF"),
		ZipCode:      elementText(ender, "CEP"),
	}
}

func elementText(parent *etree.Element, tag string) string {
	if parent == nil {
		return ""
	}
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

func findText(root *etree.Element, path string) string {
	el := root.FindElement(path)
	if el == nil {
		return ""
	}
	return el.Text()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// toCents parses a decimal amount string and converts it to integer
// cents with banker's rounding, never carrying the value as float64.
func toCents(s string) (int64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindMalformed, "amount did not parse as decimal: "+s, err)
	}
	return amount.Shift(2).RoundBank(0).IntPart(), nil
}

// parseDate accepts YYYY-MM-DD and YYYY-MM-DDTHH:MM:SS[±HH:MM], retaining
// only the calendar date.
func parseDate(s string) (time.Time, error) {
	datePart := s
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		datePart = s[:idx]
	}
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.KindMalformed, "date did not parse: "+s, err)
	}
	return t, nil
}
