package money_test

import (
	"encoding/json"
	"testing"

	"go-ems/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	cases := map[string]string{
		"1.005":   "1.01",
		"1.004":   "1",
		"-1.005":  "-1.01",
		"2.675":   "2.68",
		"89250":   "89250",
		"0.125":   "0.13",
		"-0.125":  "-0.13",
		"10.0049": "10",
	}
	for in, want := range cases {
		assert.True(t, dec(want).Equal(money.Round2(dec(in))), "round2(%s)", in)
	}
}

func TestApplyPercent(t *testing.T) {
	assert.Equal(t, "89250.00", money.Format(money.ApplyPercent(dec("85000.00"), dec("5.0"))))
	assert.Equal(t, "78000.00", money.Format(money.ApplyPercent(dec("78000.00"), dec("0"))))
	assert.Equal(t, "74100.00", money.Format(money.ApplyPercent(dec("78000.00"), dec("-5"))))
	// 33333.33 * 1.015 = 33833.32995
	assert.Equal(t, "33833.33", money.Format(money.ApplyPercent(dec("33333.33"), dec("1.5"))))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$85,000.00", money.FormatCurrency(dec("85000")))
	assert.Equal(t, "$999.50", money.FormatCurrency(dec("999.5")))
	assert.Equal(t, "$1,234,567.89", money.FormatCurrency(dec("1234567.891")))
	assert.Equal(t, "-$12.30", money.FormatCurrency(dec("-12.3")))
	assert.Equal(t, "$0.00", money.FormatCurrency(dec("0")))
}

func TestText(t *testing.T) {
	var body struct {
		A money.Text `json:"a"`
		B money.Text `json:"b"`
		C money.Text `json:"c"`
		D money.Text `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 80000, "b": "90000.50", "c": null, "d": "abc"}`), &body)
	assert.NoError(t, err)

	v, ok, err := body.A.Parse()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.True(t, dec("80000").Equal(v))

	v, ok, err = body.B.Parse()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.True(t, dec("90000.50").Equal(v))

	_, ok, err = body.C.Parse()
	assert.False(t, ok)
	assert.NoError(t, err)

	_, ok, err = body.D.Parse()
	assert.True(t, ok)
	assert.Error(t, err)
}
