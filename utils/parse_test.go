package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceISK(t *testing.T) {
	assert.Equal(t, int64(19990), ParsePriceISK("19990 kr"))
	assert.Equal(t, int64(19990), ParsePriceISK("19.990 kr"))
	assert.Equal(t, int64(19990), ParsePriceISK("19 990 kr/mán"))
	assert.Equal(t, int64(2000), ParsePriceISK("2000"))
	assert.Equal(t, int64(0), ParsePriceISK(""))
	assert.Equal(t, int64(0), ParsePriceISK("ókeypis"))
	assert.Equal(t, int64(0), ParsePriceISK("kr"))
}

func TestParseIntSafe(t *testing.T) {
	assert.Equal(t, 12, ParseIntSafe(" 12 "))
	assert.Equal(t, 0, ParseIntSafe(""))
	assert.Equal(t, 0, ParseIntSafe("abc"))
}
