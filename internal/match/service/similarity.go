package service

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Blend weights; renormalized over active signals when keyword overlap is
// inapplicable.
const (
	wEdit    = 0.55
	wJaccard = 0.25
	wKeyword = 0.20

	containBase = 0.85
	containSpan = 0.10
	prefixBase  = 0.70
	prefixSpan  = 0.10
)

// similarity scores two raw strings in [0,1]. Inputs are compact-normalized
// internally; rules fire in precedence order and short-circuit.
func similarity(a, b string) float64 {
	na, nb := normalizeCompact(a), normalizeCompact(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	// containment, either direction, scaled by length ratio so a near-equal
	// containment beats a short fragment inside a long string
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		la, lb := utf8.RuneCountInString(na), utf8.RuneCountInString(nb)
		shorter, longer := la, lb
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return containBase + containSpan*float64(shorter)/float64(longer)
	}

	ra, rb := []rune(na), []rune(nb)
	if len(ra) >= 2 && len(rb) >= 2 && string(ra[:2]) == string(rb[:2]) {
		return prefixBase + prefixSpan*editSimilarity(string(ra[2:]), string(rb[2:]))
	}

	edit := editSimilarity(na, nb)
	jac := jaccard(ra, rb)
	if kw, ok := keywordOverlap(na, nb); ok {
		return wEdit*edit + wJaccard*jac + wKeyword*kw
	}
	// keywords inapplicable: renormalize the remaining weights to sum to 1
	rest := wEdit + wJaccard
	return (wEdit/rest)*edit + (wJaccard/rest)*jac
}

// editSimilarity = 1 - levenshtein/maxLen over full strings; label-length
// text, no early termination needed.
func editSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	m := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > m {
		m = n
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(m)
}

// jaccard over character sets, not multisets.
func jaccard(a, b []rune) float64 {
	sa := make(map[rune]struct{}, len(a))
	for _, r := range a {
		sa[r] = struct{}{}
	}
	sb := make(map[rune]struct{}, len(b))
	for _, r := range b {
		sb[r] = struct{}{}
	}
	inter := 0
	for r := range sa {
		if _, ok := sb[r]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// keywordOverlap pairs extracted keywords across the two sides within edit
// distance 1. ok=false when either side yields none.
func keywordOverlap(a, b string) (float64, bool) {
	ka, kb := extractKeywords(a), extractKeywords(b)
	if len(ka) == 0 || len(kb) == 0 {
		return 0, false
	}
	matched := 0
	for _, k := range ka {
		if pairsWithin1(k, kb) {
			matched++
		}
	}
	for _, k := range kb {
		if pairsWithin1(k, ka) {
			matched++
		}
	}
	return float64(matched) / float64(len(ka)+len(kb)), true
}

func pairsWithin1(k string, pool []string) bool {
	for _, p := range pool {
		if levenshtein.ComputeDistance(k, p) <= 1 {
			return true
		}
	}
	return false
}

// findBestSubstring locates the normalized needle inside the normalized
// haystack and maps the span back onto the original haystack. Empty string
// when there is no exact normalized containment.
func findBestSubstring(haystack, needle string) string {
	nh, idx := normalizeMapped(haystack)
	nn := normalizeCompact(needle)
	if nh == "" || nn == "" {
		return ""
	}
	pos := strings.Index(nh, nn)
	if pos < 0 {
		return ""
	}
	start := utf8.RuneCountInString(nh[:pos])
	n := utf8.RuneCountInString(nn)
	orig := []rune(haystack)
	return string(orig[idx[start] : idx[start+n-1]+1])
}
