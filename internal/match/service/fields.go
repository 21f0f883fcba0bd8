package service

import (
	"strings"

	"labelmatch-service/internal/match/model"
)

// Alternative policy: independent per-field scoring with separate thresholds,
// confidence blended over whichever fields the record actually carries.
var fieldPolicy = []struct {
	field     string
	weight    float64
	threshold float64
}{
	{model.FieldName, 0.45, 0.80},
	{model.FieldAddress, 0.40, 0.75},
	{model.FieldSuburb, 0.15, 0.85},
}

func (e *Engine) matchFields(ocrText string, rec model.Record) scored {
	if strings.TrimSpace(ocrText) == "" {
		return scored{}
	}

	var (
		passed    []model.FieldScore
		sum, wsum float64
	)
	for _, fp := range fieldPolicy {
		val := rec.Get(fp.field)
		if val == "" {
			continue
		}
		s := similarity(ocrText, val)
		// OCR trades digits for letters freely; retry letter fields digit-free
		if ds := similarity(stripDigits(ocrText), stripDigits(val)); ds > s {
			s = ds
		}
		sum += fp.weight * s
		wsum += fp.weight
		if e.opt.Trace {
			e.log.Debug().
				Str("field", fp.field).
				Str("value", val).
				Float64("score", s).
				Msg("field score")
		}
		if s < fp.threshold {
			continue
		}
		passed = append(passed, model.FieldScore{
			Field:   fp.field,
			Score:   s,
			Segment: findBestSubstring(ocrText, val),
		})
	}
	if wsum == 0 || len(passed) == 0 {
		return scored{}
	}

	fields := make([]string, 0, len(passed))
	bestSeg := ""
	bestScore := -1.0
	for _, fs := range passed {
		fields = append(fields, fs.Field)
		if fs.Score > bestScore && fs.Segment != "" {
			bestScore = fs.Score
			bestSeg = fs.Segment
		}
	}
	if bestSeg == "" {
		bestSeg = ocrText
	}
	return scored{
		Similarity:    sum / wsum,
		MatchedFields: fields,
		Segment:       bestSeg,
	}
}
