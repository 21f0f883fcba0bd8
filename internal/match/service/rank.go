package service

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"labelmatch-service/internal/match/model"
)

// scored is the per-record outcome of one policy run. Empty MatchedFields
// means the record is excluded from ranking regardless of Similarity.
type scored struct {
	Similarity    float64
	MatchedFields []string
	Segment       string
}

// Engine ranks reference records against one OCR query. Stateless per call:
// the record snapshot is owned by the caller and never mutated here, so
// concurrent FindMatches calls need no coordination.
type Engine struct {
	opt model.Options
	log zerolog.Logger
}

func NewEngine(opt model.Options, log zerolog.Logger) *Engine {
	return &Engine{opt: opt, log: log}
}

// FindMatches scores every record, keeps those the active policy accepted,
// orders strong-category-first then by descending similarity (stable on
// original record order), and truncates to the configured cap.
func (e *Engine) FindMatches(q model.Query, records []model.Record) []model.MatchResult {
	out := []model.MatchResult{}
	if strings.TrimSpace(q.Text) == "" || len(records) == 0 {
		return out
	}

	for _, rec := range records {
		var sc scored
		switch e.opt.Policy {
		case model.PolicyMultiField:
			sc = e.matchFields(q.Text, rec)
		default:
			sc = e.matchStreetAddress(q.Text, rec)
		}
		if len(sc.MatchedFields) == 0 {
			continue
		}
		out = append(out, model.MatchResult{
			Record:        rec,
			MatchedFields: sc.MatchedFields,
			Similarity:    sc.Similarity,
			Confidence:    q.Confidence,
			QueryText:     q.Text,
			Segment:       sc.Segment,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := hasStrongField(out[i].MatchedFields), hasStrongField(out[j].MatchedFields)
		if si != sj {
			return si
		}
		return out[i].Similarity > out[j].Similarity
	})

	if limit := e.opt.Limit(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Strong categories sort ahead of weaker ones before similarity ordering.
func hasStrongField(fields []string) bool {
	for _, f := range fields {
		if f == model.FieldStreetAddress || f == model.FieldName {
			return true
		}
	}
	return false
}
