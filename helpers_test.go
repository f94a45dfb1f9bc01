package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,000", 1000},
		{"$2500.00", 2500},
		{"  $1,234.56 ", 1234.56},
		{"0", 0},
		{"750", 750},
	}
	for _, c := range cases {
		got, err := parseAmount(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12x", "-100", "$-5"} {
		_, err := parseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestRatePerMile(t *testing.T) {
	assert.Equal(t, 2.5, ratePerMile(2500, 1000))
	assert.Equal(t, 2.86, ratePerMile(1000, 350))
	assert.Equal(t, 0.0, ratePerMile(500, 0), "zero distance yields the undefined marker")
	assert.Equal(t, 0.0, ratePerMile(0, 800))
}

func TestClassifyDistance(t *testing.T) {
	assert.Equal(t, "Short", classifyDistance(0))
	assert.Equal(t, "Short", classifyDistance(499.99))
	assert.Equal(t, "Medium", classifyDistance(500))
	assert.Equal(t, "Medium", classifyDistance(750))
	assert.Equal(t, "Medium", classifyDistance(1000))
	assert.Equal(t, "Long", classifyDistance(1000.01))
	assert.Equal(t, "Long", classifyDistance(2500))
}

func TestIsStateCode(t *testing.T) {
	assert.True(t, isStateCode("CA"))
	assert.True(t, isStateCode("tx"))
	assert.False(t, isStateCode("C"))
	assert.False(t, isStateCode("CAL"))
	assert.False(t, isStateCode("9A"))
	assert.False(t, isStateCode("90210"))
}

func TestFormatRPM(t *testing.T) {
	assert.Equal(t, "2.50", formatRPM(Load{TotalMiles: 1000, RPMTotal: 2.5}))
	assert.Equal(t, "—", formatRPM(Load{TotalMiles: 0, RPMTotal: 0}))
}
