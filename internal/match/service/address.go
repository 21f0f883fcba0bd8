package service

import (
	"strings"

	"labelmatch-service/internal/match/model"
)

// numberCase classifies what street-number information each side carries;
// both the number score and the acceptance rule depend on it.
type numberCase int

const (
	caseBothNumeric   numberCase = iota // OCR leading number vs numeric record number
	caseOCRNumRecText                   // OCR has a number, record has a named prefix
	caseNoNumRecText                    // OCR has no number, record has a named prefix
	caseNoNumbers                       // neither side has street-number info
	caseOther                           // asymmetric leftovers
)

// Acceptance table for the street-address policy. Empirically tuned starting
// calibration; kept in one place so relabelling against real OCR pairs is a
// single edit.
type addressThresholds struct {
	numericBody    float64 // both-numeric: body floor (number must be exact)
	numPrefixBody  float64 // OCR-number / text-prefix: body floor
	textPrefixNum  float64 // no-number / text-prefix: number floor ...
	textPrefixBody float64 // ... with this body floor
	textPrefixSolo float64 // ... or body alone above this
	noNumBody      float64 // no numbers either side: body floor ...
	noNumWhole     float64 // ... or whole-string floor
	otherComposite float64 // asymmetric: composite floor ...
	otherBody      float64 // ... or body alone
	fallback       float64 // universal composite fallback
}

var defaultAddressThresholds = addressThresholds{
	numericBody:    0.70,
	numPrefixBody:  0.80,
	textPrefixNum:  0.80,
	textPrefixBody: 0.70,
	textPrefixSolo: 0.85,
	noNumBody:      0.85,
	noNumWhole:     0.80,
	otherComposite: 0.70,
	otherBody:      0.90,
	fallback:       0.75,
}

// Composite weights: number evidence, address body, whole-string fallback.
const (
	wNumber = 0.4
	wBody   = 0.5
	wWhole  = 0.1
)

// matchStreetAddress scores one record under the street-address policy.
// Requires a non-empty record address; total over every other input.
func (e *Engine) matchStreetAddress(ocrText string, rec model.Record) scored {
	addr := rec.Get(model.FieldAddress)
	if addr == "" || strings.TrimSpace(ocrText) == "" {
		return scored{}
	}

	ocrNum, remainder := leadingNumber(ocrText)
	csvNum := rec.Get(model.FieldStreetNumber)
	csvNumeric := csvNum != "" && isAllDigits(csvNum)

	kind, numScore := numberScore(ocrText, ocrNum, csvNum, csvNumeric)
	bodyScore := e.addressBodyScore(ocrText, remainder, addr)
	wholeScore := wholeStringScore(ocrText, csvNum, addr)
	composite := wNumber*numScore + wBody*bodyScore + wWhole*wholeScore

	t := defaultAddressThresholds
	var accept bool
	switch kind {
	case caseBothNumeric:
		accept = numScore == 1.0 && bodyScore >= t.numericBody
	case caseOCRNumRecText:
		accept = bodyScore >= t.numPrefixBody
	case caseNoNumRecText:
		accept = (numScore >= t.textPrefixNum && bodyScore >= t.textPrefixBody) ||
			bodyScore >= t.textPrefixSolo
	case caseNoNumbers:
		accept = bodyScore >= t.noNumBody || wholeScore >= t.noNumWhole
	default:
		accept = composite >= t.otherComposite || bodyScore >= t.otherBody
	}
	if !accept && composite >= t.fallback {
		accept = true
	}

	if e.opt.Trace {
		e.log.Debug().
			Str("addr", addr).
			Int("case", int(kind)).
			Float64("num", numScore).
			Float64("body", bodyScore).
			Float64("whole", wholeScore).
			Float64("composite", composite).
			Bool("accept", accept).
			Msg("street-address score")
	}

	out := scored{Similarity: composite}
	if accept {
		out.MatchedFields = []string{model.FieldStreetAddress}
		out.Segment = ocrText
	}
	return out
}

// numberScore compares the street-number evidence on both sides. A numeric
// mismatch is near-disqualifying: wrong house numbers on a matching street
// are strong negative evidence.
func numberScore(ocrText, ocrNum, csvNum string, csvNumeric bool) (numberCase, float64) {
	ocrHasNum := ocrNum != ""
	switch {
	case ocrHasNum && csvNumeric:
		if ocrNum == csvNum {
			return caseBothNumeric, 1.0
		}
		return caseBothNumeric, 0.1
	case ocrHasNum && csvNum != "":
		// named prefix on the record: defer to the address body
		return caseOCRNumRecText, 0.7
	case !ocrHasNum && csvNum != "" && !csvNumeric:
		first := firstWord(ocrText)
		switch {
		case similarity(first, csvNum) >= 0.8:
			return caseNoNumRecText, 0.95
		case containsEitherWay(first, csvNum):
			return caseNoNumRecText, 0.8
		default:
			return caseNoNumRecText, 0.4
		}
	case !ocrHasNum && csvNum == "":
		return caseNoNumbers, 1.0 // nothing to contradict
	case ocrHasNum && csvNum == "":
		return caseOther, 0.5
	default:
		return caseOther, 0.3
	}
}

const (
	bigramSimFloor = 0.9
	bigramBonus    = 0.3
	tokenSimFloor  = 0.8
	bodyCap        = 0.95
	bodyRescore    = 0.6 // below this, retry unfiltered through the scorer
	unfilteredDamp = 0.7
)

// addressBodyScore compares the OCR remainder (or full text) against the
// record address, both with trailing street-type words stripped.
func (e *Engine) addressBodyScore(ocrText, remainder, addr string) float64 {
	target := remainder
	if target == "" {
		target = ocrText
	}
	ft := removeAddressSuffixes(target)
	fr := removeAddressSuffixes(addr)

	score := filteredTokenScore(ft, fr)
	if score < bodyRescore {
		if fb := similarity(target, addr) * unfilteredDamp; fb > score {
			score = fb
		}
	}
	return score
}

func filteredTokenScore(ft, fr string) float64 {
	ct, cr := normalizeCompact(ft), normalizeCompact(fr)
	if ct == "" || cr == "" {
		return 0
	}
	if strings.Contains(ct, cr) || strings.Contains(cr, ct) {
		return containScaled(ct, cr, 0.90, 0.05)
	}

	ocrToks := wordsMin2(ft)
	recToks := wordsMin2(fr)
	if len(ocrToks) == 0 || len(recToks) == 0 {
		return 0
	}

	bonus := 0.0
	for i := 0; i+1 < len(ocrToks); i++ {
		pair := ocrToks[i] + ocrToks[i+1]
		for j := 0; j+1 < len(recToks); j++ {
			if similarity(pair, recToks[j]+recToks[j+1]) >= bigramSimFloor {
				bonus += bigramBonus
				break
			}
		}
	}

	matched := 0
	for _, ot := range ocrToks {
		for _, rt := range recToks {
			if similarity(ot, rt) >= tokenSimFloor {
				matched++
				break
			}
		}
	}

	base := float64(matched) / float64(len(ocrToks)) * 0.85
	if s := base + bonus; s < bodyCap {
		return s
	}
	return bodyCap
}

// wholeStringScore compares the full OCR text against streetNumber+address
// concatenated; catches records whose decomposition is off but whose full
// line still lines up.
func wholeStringScore(ocrText, csvNum, addr string) float64 {
	recAll := addr
	if csvNum != "" {
		recAll = csvNum + " " + addr
	}
	na, nb := normalizeCompact(ocrText), normalizeCompact(recAll)
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return containScaled(na, nb, 0.90, 0.05)
	}
	return similarity(ocrText, recAll) * 0.8
}

// ===== helpers =====

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func firstWord(s string) string {
	f := strings.Fields(normalizeSpaced(s))
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func containsEitherWay(a, b string) bool {
	na, nb := normalizeCompact(a), normalizeCompact(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// containScaled assumes containment already holds and scales base upward by
// the length ratio of the two normalized strings.
func containScaled(na, nb string, base, span float64) float64 {
	la, lb := len([]rune(na)), len([]rune(nb))
	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return base + span*float64(shorter)/float64(longer)
}

func wordsMin2(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) >= 2 {
			out = append(out, w)
		}
	}
	return out
}
