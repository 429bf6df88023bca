// Package document concentra las reglas de tipos de documento tributario (Chile):
// normalización, alias, lista permitida y política de numeración por tipo.
package document

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/erp-api/internal/domain"
)

// Tipos de documento.
const (
	TypeFactura      = "FACTURA"
	TypeBoleta       = "BOLETA"
	TypeCotizacion   = "COTIZACION"
	TypeGuiaDespacho = "GUIA_DESPACHO"
	TypeNotaCredito  = "NOTA_CREDITO"
	TypeNotaDebito   = "NOTA_DEBITO"
	TypeOrdenCompra  = "ORDEN_COMPRA"
)

// aliases se aplican antes de validar contra la lista permitida.
var aliases = map[string]string{
	"TICKET": TypeCotizacion,
}

// saleTypes tipos aceptados por la creación de ventas.
var saleTypes = map[string]bool{
	TypeFactura:    true,
	TypeBoleta:     true,
	TypeCotizacion: true,
}

// NumberingPolicy indica si el tipo consume correlativo y si tolera operar sin él.
// AllowUnsequenced=true permite un número sintético {TIPO}-{epochMillis} cuando la
// empresa no tiene correlativo activo configurado.
type NumberingPolicy struct {
	Sequenced        bool
	AllowUnsequenced bool
}

var policies = map[string]NumberingPolicy{
	TypeFactura:      {Sequenced: true, AllowUnsequenced: true},
	TypeBoleta:       {Sequenced: true, AllowUnsequenced: true},
	TypeCotizacion:   {Sequenced: true, AllowUnsequenced: true},
	TypeNotaCredito:  {Sequenced: true, AllowUnsequenced: true},
	TypeNotaDebito:   {Sequenced: true, AllowUnsequenced: true},
	TypeOrdenCompra:  {Sequenced: true, AllowUnsequenced: true},
	TypeGuiaDespacho: {Sequenced: true, AllowUnsequenced: false},
}

// PolicyFor devuelve la política de numeración del tipo. Tipos desconocidos no se numeran.
func PolicyFor(docType string) NumberingPolicy {
	return policies[docType]
}

// Normalize lleva un tipo escrito a mano ("Guía de despacho", "boleta ") a su forma canónica
// (GUIA_DE_DESPACHO, BOLETA): sin tildes, mayúsculas, separadores como '_'.
func Normalize(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(raw))
	if err != nil {
		s = strings.TrimSpace(raw)
	}
	s = strings.ToUpper(s)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
	return s
}

// ResolveSaleType normaliza el tipo pedido, aplica alias y valida contra la lista permitida.
// Si raw viene vacío se usa companyDefault (configuración de la empresa).
func ResolveSaleType(raw, companyDefault string) (string, error) {
	t := Normalize(raw)
	if t == "" {
		t = Normalize(companyDefault)
	}
	if alias, ok := aliases[t]; ok {
		t = alias
	}
	if !saleTypes[t] {
		return "", domain.Invalid("tipo de documento no permitido: %q", raw)
	}
	return t, nil
}

// IsCreditable informa si sobre el tipo se pueden emitir notas de crédito o débito.
func IsCreditable(docType string) bool {
	return docType == TypeFactura || docType == TypeBoleta
}

// SyntheticNumber número no correlativo usado cuando la política permite operar sin correlativo.
func SyntheticNumber(docType string, now time.Time) string {
	return fmt.Sprintf("%s-%d", docType, now.UnixMilli())
}
