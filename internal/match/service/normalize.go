package service

import (
	"strings"
	"unicode"
)

// OCR digit lookalikes, applied letter→digit only and only between digits
// (a blind bidirectional swap corrupts legitimate text in both directions).
var digitLookalikes = map[rune]rune{
	'O': '0', 'o': '0',
	'l': '1', 'I': '1',
	'S': '5', 's': '5',
	'B': '8', 'b': '8',
}

// Street-type words stripped from the tail of an address before token scoring.
var streetSuffixes = map[string]struct{}{
	"road": {}, "rd": {}, "street": {}, "st": {}, "avenue": {}, "ave": {},
	"drive": {}, "dr": {}, "lane": {}, "ln": {}, "way": {}, "close": {},
	"court": {}, "ct": {}, "place": {}, "pl": {}, "crescent": {}, "cres": {},
	"terrace": {}, "tce": {}, "circuit": {}, "cct": {}, "boulevard": {}, "blvd": {},
	"highway": {}, "hwy": {}, "esplanade": {}, "esp": {}, "parade": {}, "pde": {},
	"grove": {}, "gr": {}, "walk": {}, "gardens": {}, "gdns": {},
}

// Administrative / street / building suffix ideographs anchoring keyword
// extraction on CJK addresses.
var unitMarkers = map[rune]struct{}{
	'省': {}, '市': {}, '区': {}, '县': {}, '镇': {}, '乡': {}, '村': {},
	'街': {}, '路': {}, '巷': {}, '弄': {}, '号': {}, '楼': {}, '栋': {},
	'座': {}, '室': {}, '道': {}, '里': {},
}

func isCJK(r rune) bool { return unicode.Is(unicode.Han, r) }

func keepRune(r rune) bool {
	return (r >= '0' && r <= '9') || isCJK(r) || unicode.Is(unicode.Latin, r)
}

// normalizeCompact lowercases and keeps only Latin letters, decimal digits
// and CJK ideographs. Deterministic and idempotent.
func normalizeCompact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeMapped is normalizeCompact plus, per normalized rune, the index of
// the original rune it came from. Needed to map match spans back onto the raw
// text (normalization deletes characters).
func normalizeMapped(s string) (string, []int) {
	var b strings.Builder
	var idx []int
	for i, r := range []rune(s) {
		lr := unicode.ToLower(r)
		if keepRune(lr) {
			b.WriteRune(lr)
			idx = append(idx, i)
		}
	}
	return b.String(), idx
}

// normalizeSpaced keeps word boundaries: same charset as normalizeCompact,
// but runs of stripped characters and whitespace become single spaces and
// hyphens survive. Address tokenization needs this mode.
func normalizeSpaced(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case keepRune(r):
			b.WriteRune(r)
		case r == '-':
			b.WriteRune('-')
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripDigits removes decimal digits; OCR confuses digits with letters, so
// letter-field comparison runs on digit-free text.
func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// extractLeadingNumber returns the longest all-digit prefix of s (leading
// whitespace ignored), or "". A digit lookalike letter strictly between two
// digits is read as its digit.
func extractLeadingNumber(s string) string {
	num, _ := leadingNumber(s)
	return num
}

// leadingNumber also returns the remainder of s after the number and any
// following whitespace.
func leadingNumber(s string) (string, string) {
	rs := []rune(strings.TrimSpace(s))
	var num []rune
	i := 0
	for ; i < len(rs); i++ {
		r := rs[i]
		if r >= '0' && r <= '9' {
			num = append(num, r)
			continue
		}
		d, ok := digitLookalikes[r]
		if ok && len(num) > 0 && i+1 < len(rs) && rs[i+1] >= '0' && rs[i+1] <= '9' {
			num = append(num, d)
			continue
		}
		break
	}
	if len(num) == 0 {
		return "", string(rs)
	}
	return string(num), strings.TrimSpace(string(rs[i:]))
}

// removeAddressSuffixes spaced-normalizes s and drops the final token iff it
// is a street-type word. Only the last token is eligible, no recursion.
func removeAddressSuffixes(s string) string {
	f := strings.Fields(normalizeSpaced(s))
	if n := len(f); n > 1 {
		if _, ok := streetSuffixes[f[n-1]]; ok {
			f = f[:n-1]
		}
	}
	return strings.Join(f, " ")
}

// extractKeywords pulls name-like CJK runs (2-4 ideographs; longer runs
// contribute their 2- and 3-char prefixes) and short substrings anchored at a
// unit-marker ideograph. Deduplicated, input order preserved.
func extractKeywords(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}

	rs := []rune(s)
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		run := rs[runStart:end]
		switch n := len(run); {
		case n >= 2 && n <= 4:
			add(string(run))
		case n > 4:
			add(string(run[:2]))
			add(string(run[:3]))
		}
		runStart = -1
	}
	for i, r := range rs {
		if isCJK(r) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i)
	}
	flush(len(rs))

	for i, r := range rs {
		if _, ok := unitMarkers[r]; !ok {
			continue
		}
		start := i
		for start > 0 && i-start < 2 {
			p := rs[start-1]
			if _, marker := unitMarkers[p]; marker || !isCJK(p) {
				break
			}
			start--
		}
		if start < i {
			add(string(rs[start : i+1]))
		}
	}
	return out
}
