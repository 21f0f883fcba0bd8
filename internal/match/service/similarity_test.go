package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"alf casey road", "北京市朝阳区", "34 Main Rd"} {
		assert.Equal(t, 1.0, similarity(s, s))
	}
	// case and punctuation fold away before comparison
	assert.Equal(t, 1.0, similarity("Alf Casey Road", "alf-casey road!"))
}

func TestSimilarityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, similarity("", "anything"))
	assert.Equal(t, 0.0, similarity("anything", ""))
	assert.Equal(t, 0.0, similarity("", ""))
	assert.Equal(t, 0.0, similarity("!!!", "abc"), "normalizes to empty")
}

func TestSimilarityBounded(t *testing.T) {
	pairs := [][2]string{
		{"casey", "alf casey road"},
		{"maple", "marble"},
		{"abc", "xbz"},
		{"张三", "张三住在北京市朝阳区"},
		{"12 main road", "34 main road"},
		{"completely", "different"},
	}
	for _, p := range pairs {
		s := similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, s, 1.0, "%q vs %q", p[0], p[1])
	}
}

func TestSimilarityContainment(t *testing.T) {
	s := similarity("casey", "alf casey road")
	assert.GreaterOrEqual(t, s, 0.85)
	assert.Less(t, s, 1.0)

	// near-equal-length containment scores above a short fragment
	long := similarity("alf casey roa", "alf casey road")
	assert.Greater(t, long, s)
}

func TestSimilaritySharedPrefix(t *testing.T) {
	// "ma" prefix, no containment: fixed high band refined by suffix edits
	s := similarity("maple", "marble")
	assert.GreaterOrEqual(t, s, 0.70)
	assert.LessOrEqual(t, s, 0.80)
	assert.InDelta(t, 0.75, s, 1e-9)
}

func TestSimilarityBlend(t *testing.T) {
	// no shortcut fires: weighted edit + jaccard, renormalized (no keywords)
	s := similarity("abc", "xbz")
	assert.InDelta(t, 0.2917, s, 0.01)
}

func TestSimilarityKeywordSignal(t *testing.T) {
	// shared CJK keywords pull the blend up versus a keyword-free rearrangement
	with := similarity("张三 北京市", "北京市 张三丰")
	assert.Greater(t, with, 0.0)
	assert.LessOrEqual(t, with, 1.0)
}

func TestFindBestSubstring(t *testing.T) {
	assert.Equal(t, "Casey ROAD", findBestSubstring("34 Alf-Casey ROAD!", "casey road"))
	assert.Equal(t, "北京市", findBestSubstring("发往: 北京市朝阳区", "北京市"))
	assert.Equal(t, "", findBestSubstring("34 Alf Casey Road", "sunset"))
	assert.Equal(t, "", findBestSubstring("", "x"))
	assert.Equal(t, "", findBestSubstring("x", ""))
}
