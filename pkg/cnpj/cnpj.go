package cnpj

import (
	"fmt"
	"unicode"
)

// pesos del cálculo módulo 11 de la Receita Federal. El primer dígito verificador
// usa los 12 últimos pesos sobre la base; el segundo, los 13 sobre base + DV1.
var weights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// Normalize deja solo los dígitos ("12.345.678/0001-95" -> "12345678000195").
func Normalize(s string) string {
	out := make([]rune, 0, 14)
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// Validate verifica largo y dígitos verificadores. Acepta el CNPJ con o sin máscara.
func Validate(s string) error {
	digits := Normalize(s)
	if len(digits) != 14 {
		return fmt.Errorf("cnpj: debe tener 14 dígitos, se encontraron %d", len(digits))
	}
	if repeated(digits) {
		return fmt.Errorf("cnpj: %s inválido", digits)
	}
	dv1, dv2, err := CheckDigits(digits[:12])
	if err != nil {
		return err
	}
	if digits[12] != dv1 || digits[13] != dv2 {
		return fmt.Errorf("cnpj: dígitos verificadores inválidos: esperado %c%c, recibido %s", dv1, dv2, digits[12:])
	}
	return nil
}

// CheckDigits calcula los dos dígitos verificadores para los 12 dígitos base.
func CheckDigits(base string) (byte, byte, error) {
	digits := Normalize(base)
	if len(digits) < 12 {
		return 0, 0, fmt.Errorf("cnpj: se requieren 12 dígitos base, se encontraron %d", len(digits))
	}
	digits = digits[:12]
	dv1 := mod11(digits, weights[1:])
	dv2 := mod11(digits+string(dv1), weights[:])
	return dv1, dv2, nil
}

// Format aplica la máscara 00.000.000/0000-00. Otros largos se devuelven tal cual.
func Format(s string) string {
	d := Normalize(s)
	if len(d) != 14 {
		return s
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

func mod11(digits string, w []int) byte {
	var sum int
	for i := range digits {
		sum += int(digits[i]-'0') * w[i]
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + (11 - rem))
}

func repeated(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
