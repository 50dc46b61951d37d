package fiscalxml

import (
	"testing"
	"time"
)

const nfeFixture = `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe1">
    <ide>
      <nNF>789</nNF>
      <dhEmi>2024-01-15T10:00:00-03:00</dhEmi>
    </ide>
    <dest>
      <xNome>Comprador Exemplo LTDA</xNome>
      <CNPJ>12345678000195</CNPJ>
      <enderDest>
        <xLgr>Rua das Flores</xLgr>
        <nro>100</nro>
        <xBairro>Centro</xBairro>
        <xMun>Sao Paulo</xMun>
        <UF>SP</UF>
        <CEP>01001000</CEP>
      </enderDest>
    </dest>
    <total>
      <ICMSTot>
        <vNF>1234.56</vNF>
      </ICMSTot>
    </total>
  </infNFe>
</NFe>`

func TestExtractNFe(t *testing.T) {
	res, err := Extract([]byte(nfeFixture))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Kind != KindNFe {
		t.Fatalf("Kind = %v, want NFE", res.Kind)
	}
	if res.AmountCents != 123456 {
		t.Errorf("AmountCents = %d, want 123456", res.AmountCents)
	}
	wantDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !res.IssueDate.Equal(wantDate) {
		t.Errorf("IssueDate = %v, want %v", res.IssueDate, wantDate)
	}
	if res.DocNumber != "789" {
		t.Errorf("DocNumber = %q, want 789", res.DocNumber)
	}
	if res.PayerTaxID != "12345678000195" {
		t.Errorf("PayerTaxID = %q", res.PayerTaxID)
	}
	if res.Address.City != "Sao Paulo" {
		t.Errorf("Address.City = %q", res.Address.City)
	}
}

func TestExtractNFeRoundTripIsIdempotent(t *testing.T) {
	first, err := Extract([]byte(nfeFixture))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	second, err := Extract([]byte(nfeFixture))
	if err != nil {
		t.Fatalf("Extract (2nd parse): %v", err)
	}
	if *first != *second {
		t.Fatalf("re-parsing identical bytes produced different results:\n%+v\n%+v", first, second)
	}
}

const cteFixtureToma3 = `<?xml version="1.0" encoding="UTF-8"?>
<CTe xmlns="http://www.portalfiscal.inf.br/cte">
  <infCte Id="CTe1">
    <ide>
      <nCT>555</nCT>
      <dhEmi>2024-03-10T08:00:00-03:00</dhEmi>
      <toma3>
        <toma>3</toma>
      </toma3>
    </ide>
    <dest>
      <xNome>Destinatario Exemplo</xNome>
      <CNPJ>12345678000195</CNPJ>
      <enderDest>
        <xLgr>Av Brasil</xLgr>
        <nro>200</nro>
        <xBairro>Jardins</xBairro>
        <xMun>Rio de Janeiro</xMun>
        <UF>RJ</UF>
        <CEP>20000000</CEP>
      </enderDest>
    </dest>
    <vPrest>
      <vTPrest>500.00</vTPrest>
    </vPrest>
  </infCte>
</CTe>`

func TestExtractCTeTaker3ResolvesToDestinatary(t *testing.T) {
	res, err := Extract([]byte(cteFixtureToma3))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Kind != KindCTe {
		t.Fatalf("Kind = %v, want CTE", res.Kind)
	}
	if res.PayerName != "Destinatario Exemplo" {
		t.Errorf("PayerName = %q", res.PayerName)
	}
	if res.AmountCents != 50000 {
		t.Errorf("AmountCents = %d, want 50000", res.AmountCents)
	}
	if res.DocNumber != "555" {
		t.Errorf("DocNumber = %q", res.DocNumber)
	}
}

const cteFixtureToma0 = `<?xml version="1.0" encoding="UTF-8"?>
<CTe xmlns="http://www.portalfiscal.inf.br/cte">
  <infCte Id="CTe2">
    <ide>
      <nCT>556</nCT>
      <dhEmi>2024-03-11T08:00:00-03:00</dhEmi>
      <toma3>
        <toma>0</toma>
      </toma3>
    </ide>
    <rem>
      <xNome>Remetente Exemplo</xNome>
      <CNPJ>11222333000181</CNPJ>
      <enderReme>
        <xLgr>Rua Sender</xLgr>
        <nro>1</nro>
        <xBairro>Bairro Sender</xBairro>
        <xMun>Curitiba</xMun>
        <UF>PR</UF>
        <CEP>80000000</CEP>
      </enderReme>
    </rem>
    <dest>
      <xNome>Destinatario Nao Usado</xNome>
      <CNPJ>12345678000195</CNPJ>
    </dest>
    <vPrest>
      <vTPrest>75.50</vTPrest>
    </vPrest>
  </infCte>
</CTe>`

func TestExtractCTeTaker0ResolvesToSender(t *testing.T) {
	res, err := Extract([]byte(cteFixtureToma0))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.PayerName != "Remetente Exemplo" {
		t.Errorf("PayerName = %q, want Remetente Exemplo (taker role 0 = sender, not the fallback dest)", res.PayerName)
	}
	if res.Address.City != "Curitiba" {
		t.Errorf("Address.City = %q", res.Address.City)
	}
}

func TestExtractUnknownRoot(t *testing.T) {
	_, err := Extract([]byte(`<Foo><bar/></Foo>`))
	if err == nil {
		t.Fatal("expected an error for an unrecognized root element")
	}
}

func TestExtractMalformed(t *testing.T) {
	_, err := Extract([]byte(`not xml at all <<<`))
	if err == nil {
		t.Fatal("expected an error for malformed xml")
	}
}

func TestExtractMissingRequiredField(t *testing.T) {
	_, err := Extract([]byte(`<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe></infNFe></NFe>`))
	if err == nil {
		t.Fatal("expected MISSING_REQUIRED for an NFe with no dest")
	}
}
