package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoneda(t *testing.T) {
	cases := map[string]string{
		"0":          "$ 0,00",
		"5":          "$ 5,00",
		"300":        "$ 300,00",
		"1234.56":    "$ 1.234,56",
		"1000000":    "$ 1.000.000,00",
		"99.999":     "$ 100,00",
		"-1500.5":    "$ -1.500,50",
		"123456.789": "$ 123.456,79",
	}
	for in, want := range cases {
		assert.Equal(t, want, Moneda(decimal.RequireFromString(in)), in)
	}
}

func TestCentrar(t *testing.T) {
	assert.Equal(t, "  ab  ", Centrar("ab", 6))
	assert.Equal(t, " ab  ", Centrar("ab", 5))
	assert.Equal(t, "abcdef", Centrar("abcdef", 3))
}
