package pdf

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Money "1234.56" → "R$ 1.234,56". Textos no numéricos ("inf", "N/A", "") pasan igual.
func Money(s string) string {
	f, ok := number(s)
	if !ok {
		return placeholder(s)
	}
	return brl.Sprintf("R$ %.2f", f)
}

// Weight "1234.5" → "1.234,500 kg".
func Weight(s string) string {
	f, ok := number(s)
	if !ok {
		return placeholder(s)
	}
	return brl.Sprintf("%.3f kg", f)
}

// Quantity "1234.5" → "1.234,50" (sin unidad; el inventario mezcla kg y un).
func Quantity(s string) string {
	f, ok := number(s)
	if !ok {
		return placeholder(s)
	}
	return brl.Sprintf("%.2f", f)
}

// Percent "33.33%" o "33.33" → "33,33%".
func Percent(s string) string {
	f, ok := number(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if !ok {
		return placeholder(s)
	}
	return brl.Sprintf("%.2f", f) + "%"
}

// Markup "25.00" → "25,00%"; "inf" (custo zero) → "infinito".
func Markup(s string) string {
	if s == "inf" {
		return "infinito"
	}
	return Percent(s)
}

func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "inf" || s == "-inf" || s == "N/A" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func isNegative(s string) bool {
	f, ok := number(s)
	return ok && f < 0
}
