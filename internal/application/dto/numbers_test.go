package dto_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain"
)

func TestParseNumber_Formatos(t *testing.T) {
	cases := map[string]float64{
		"12":       12,
		"12.5":     12.5,
		"12,5":     12.5,
		" 7,25 ":   7.25,
		"1.234,56": 1234.56,
		"-3":       -3,
		"0":        0,
	}
	for in, want := range cases {
		got, err := dto.ParseNumber(dto.NumberText(in))
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
}

func TestParseNumber_Invalidos(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "NaN", "12kg", "Infinity"} {
		_, err := dto.ParseNumber(dto.NumberText(in))
		assert.Error(t, err, in)
		assert.True(t, dto.IsNotANumber(err), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestParseOptionalNumber(t *testing.T) {
	v, err := dto.ParseOptionalNumber("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = dto.ParseOptionalNumber("3,5")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.InDelta(t, 3.5, *v, 1e-9)

	_, err = dto.ParseOptionalNumber("x")
	assert.Error(t, err)
}

func TestNumberText_UnmarshalJSON(t *testing.T) {
	var in struct {
		A dto.NumberText `json:"a"`
		B dto.NumberText `json:"b"`
		C dto.NumberText `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.75, "b": "9,9", "c": null}`), &in))
	assert.Equal(t, dto.NumberText("12.75"), in.A)
	assert.Equal(t, dto.NumberText("9,9"), in.B)
	assert.True(t, in.C.IsEmpty())

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &in))
}

func TestFormato(t *testing.T) {
	assert.Equal(t, "6.67", dto.Fixed2(400.0/60))
	assert.Equal(t, "33.33%", dto.Percent2(100.0/3))
	assert.Equal(t, "2.500", dto.Fixed3(2.5))
	assert.Equal(t, "inf", dto.Fixed2(math.Inf(1)))
	assert.Equal(t, "", dto.OptionalFixed2(nil))
	assert.Equal(t, "0.00", dto.Fixed2(0))
}
