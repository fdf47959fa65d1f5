package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$150.00", FormatMoney(150))
	assert.Equal(t, "$1,234.56", FormatMoney(1234.56))
	assert.Equal(t, "$1,234,567.89", FormatMoney(1234567.89))
	assert.Equal(t, "$13,610,000.00", FormatMoney(13610000))
	assert.Equal(t, "-$500.25", FormatMoney(-500.25))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3%", FormatPercent(3))
	assert.Equal(t, "3.33%", FormatPercent(3.33))
	assert.Equal(t, "7.5%", FormatPercent(7.5))
	assert.Equal(t, "0%", FormatPercent(0))
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "none", JoinInts(nil))
	assert.Equal(t, "5", JoinInts([]int{5}))
	assert.Equal(t, "5, 8, 12", JoinInts([]int{5, 8, 12}))
}

func TestTitlecase(t *testing.T) {
	assert.Equal(t, "Moderate", Titlecase("moderate"))
	assert.Equal(t, "", Titlecase(""))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "single", OrDefault("single", "Not provided"))
	assert.Equal(t, "Not provided", OrDefault("", "Not provided"))
	assert.Equal(t, "Not provided", OrDefault("   ", "Not provided"))
}
