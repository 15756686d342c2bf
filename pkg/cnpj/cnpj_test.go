package cnpj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/pkg/cnpj"
)

func TestValidate_Validos(t *testing.T) {
	for _, c := range []string{"12.345.678/0001-95", "12345678000195", "11.222.333/0001-81"} {
		assert.NoError(t, cnpj.Validate(c), c)
	}
}

func TestValidate_Invalidos(t *testing.T) {
	cases := map[string]string{
		"dv errado":       "12.345.678/0001-90",
		"curto":           "123",
		"repetido":        "00.000.000/0000-00",
		"com letras soma": "11.222.333/0001-8",
	}
	for name, c := range cases {
		assert.Error(t, cnpj.Validate(c), name)
	}
}

func TestCheckDigits(t *testing.T) {
	dv1, dv2, err := cnpj.CheckDigits("11.222.333/0001")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv1)
	assert.Equal(t, byte('1'), dv2)

	_, _, err = cnpj.CheckDigits("1234")
	assert.Error(t, err)
}

func TestFormatYNormalize(t *testing.T) {
	assert.Equal(t, "12.345.678/0001-95", cnpj.Format("12345678000195"))
	assert.Equal(t, "123", cnpj.Format("123"))
	assert.Equal(t, "12345678000195", cnpj.Normalize(" 12.345.678/0001-95 "))
}
