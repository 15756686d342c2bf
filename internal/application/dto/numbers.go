package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/desossa-api/internal/domain"
)

// NumberText valor numérico tal como llega del cliente: string ("12,5") o número JSON (12.5).
// Se guarda el texto crudo; el parseo ocurre en ParseNumber para poder mapear el error
// al código de validación que corresponda en cada calculador.
type NumberText string

// UnmarshalJSON acepta string, número o null.
func (n *NumberText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberText(s)
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return fmt.Errorf("valor numérico inválido: %s", b)
		}
		*n = NumberText(num.String())
	}
	return nil
}

// IsEmpty indica si no se informó valor.
func (n NumberText) IsEmpty() bool { return strings.TrimSpace(string(n)) == "" }

// ErrNotANumber texto vacío o no numérico.
var ErrNotANumber = fmt.Errorf("%w: número inválido", domain.ErrInvalidInput)

// ParseNumber convierte texto de usuario a float64.
// Acepta coma decimal ("12,5") y separador de miles pt-BR ("1.234,56"). Rechaza vacío, NaN e Inf.
func ParseNumber(n NumberText) (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, ErrNotANumber
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotANumber
	}
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotANumber
	}
	return f, nil
}

// ParseOptionalNumber como ParseNumber pero el vacío significa "ausente" (nil, nil).
func ParseOptionalNumber(n NumberText) (*float64, error) {
	if n.IsEmpty() {
		return nil, nil
	}
	f, err := ParseNumber(n)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// IsNotANumber indica si err proviene de ParseNumber.
func IsNotANumber(err error) bool { return errors.Is(err, ErrNotANumber) }

// Fixed2 formatea con 2 decimales. +Inf se muestra como "inf".
func Fixed2(f float64) string { return fixed(f, 2) }

// Fixed3 formatea con 3 decimales (pesos proyectados).
func Fixed3(f float64) string { return fixed(f, 3) }

// Percent2 formatea un porcentaje: "33.33%".
func Percent2(f float64) string { return fixed(f, 2) + "%" }

// OptionalFixed2 formatea un puntero; nil produce "".
func OptionalFixed2(f *float64) string {
	if f == nil {
		return ""
	}
	return Fixed2(*f)
}

func fixed(f float64, places int32) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "N/A"
	}
	return decimal.NewFromFloat(f).StringFixed(places)
}

// ToDecimal convierte un resultado del motor a decimal redondeado (persistencia).
func ToDecimal(f float64, places int32) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f).Round(places)
}

// ToDecimalExact convierte una entrada del usuario a decimal sin redondear.
func ToDecimalExact(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}
