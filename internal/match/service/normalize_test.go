package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompact(t *testing.T) {
	assert.Equal(t, "34alfcaseyroad", normalizeCompact("  34 ALF Casey ROAD! "))
	assert.Equal(t, "北京市朝阳区", normalizeCompact(" 北京市,朝阳区。"))
	assert.Equal(t, "", normalizeCompact("!!! ---"))
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{
		"34 ALF Casey ROAD!",
		"张三住在北京市朝阳区",
		"12-14 Main St.",
		"",
		"   ",
	} {
		once := normalizeCompact(s)
		assert.Equal(t, once, normalizeCompact(once), "compact not idempotent for %q", s)
		spaced := normalizeSpaced(s)
		assert.Equal(t, spaced, normalizeSpaced(spaced), "spaced not idempotent for %q", s)
	}
}

func TestNormalizeSpaced(t *testing.T) {
	assert.Equal(t, "12-14 main st", normalizeSpaced("12-14 Main St."))
	assert.Equal(t, "alf casey road", normalizeSpaced("ALF   Casey,ROAD"))
}

func TestStripDigits(t *testing.T) {
	assert.Equal(t, "ab", stripDigits("a1b2"))
	assert.Equal(t, "main road", stripDigits("main road"))
}

func TestExtractLeadingNumber(t *testing.T) {
	assert.Equal(t, "34", extractLeadingNumber("34 ALF CASEY ROAD"))
	assert.Equal(t, "34", extractLeadingNumber("  34 Main"))
	assert.Equal(t, "", extractLeadingNumber("Main Road 34"))
	assert.Equal(t, "", extractLeadingNumber(""))

	// lookalike letters read as digits only strictly between digits
	assert.Equal(t, "102", extractLeadingNumber("1O2 Foo"))
	assert.Equal(t, "182", extractLeadingNumber("1b2 Foo"), "lowercase lookalikes too")
	assert.Equal(t, "", extractLeadingNumber("O12 Foo"))
	assert.Equal(t, "12", extractLeadingNumber("12B Main"))
}

func TestLeadingNumberRemainder(t *testing.T) {
	num, rest := leadingNumber("34   Alf Casey Road")
	assert.Equal(t, "34", num)
	assert.Equal(t, "Alf Casey Road", rest)

	num, rest = leadingNumber("Rosewood Garden Lane")
	assert.Equal(t, "", num)
	assert.Equal(t, "Rosewood Garden Lane", rest)
}

func TestRemoveAddressSuffixes(t *testing.T) {
	assert.Equal(t, "main", removeAddressSuffixes("Main Road"))
	assert.Equal(t, "main", removeAddressSuffixes("Main"))
	assert.Equal(t, "road", removeAddressSuffixes("Road"), "single token untouched")
	assert.Equal(t, "alf casey", removeAddressSuffixes("ALF CASEY ROAD"))
	assert.Equal(t, "sunset", removeAddressSuffixes("Sunset Blvd"))
	// only the last token is eligible, no recursion
	assert.Equal(t, "main road west", removeAddressSuffixes("Main Road West Ave"))
}

func TestExtractKeywordsCJK(t *testing.T) {
	kws := extractKeywords("张三住在北京市朝阳区")
	require.NotEmpty(t, kws)
	assert.Contains(t, kws, "张三", "name-like prefix run")
	assert.Contains(t, kws, "北京市")
	assert.Contains(t, kws, "朝阳区", "unit-marker anchored substring")
}

func TestExtractKeywordsShortRun(t *testing.T) {
	kws := extractKeywords("寄给 李四 的包裹")
	assert.Contains(t, kws, "李四")
	assert.Empty(t, extractKeywords("plain latin text"))
}
