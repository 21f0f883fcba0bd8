package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWithMarker(t *testing.T) {
	e := NewIdentExtractor("box")
	assert.Equal(t, "17", e.Extract("BOX 17"))
	assert.Equal(t, "0042", e.Extract("Box:0042"))
	assert.Equal(t, "12", e.Extract("bin 9 / box 12"), "marker wins over earlier digits")
	assert.Equal(t, "7", e.Extract("box-7"))
}

func TestExtractFirstDigitRun(t *testing.T) {
	e := NewIdentExtractor("box")
	assert.Equal(t, "5", e.Extract("Unit 5"))
	assert.Equal(t, "230", e.Extract("shelf 230 row 4"))
}

func TestExtractFallbacks(t *testing.T) {
	e := NewIdentExtractor("box")
	assert.Equal(t, "ALPHA", e.Extract("  ALPHA "))
	assert.Equal(t, "", e.Extract("   "))

	noMarker := NewIdentExtractor("")
	assert.Equal(t, "17", noMarker.Extract("box 17"), "first digit run without a marker")
}
