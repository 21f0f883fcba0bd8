package handler

import (
	"regexp"
	"strconv"
	"strings"

	"labelmatch-service/internal/match/model"
)

// Header synonyms per canonical field, used when the uploader does not map a
// column explicitly. Mixed-language tables are common on label stock.
var headerSynonyms = map[string][]string{
	model.FieldName:         {"name", "recipient", "contact", "姓名", "名前", "收件人"},
	model.FieldAddress:      {"address", "addr", "street", "地址", "住址", "住所"},
	model.FieldStreetNumber: {"street number", "streetnumber", "street no", "no", "number", "番地", "门牌"},
	model.FieldSuburb:       {"suburb", "city", "town", "locality", "区域", "城市"},
	model.FieldIdentifier:   {"identifier", "id", "box", "bin", "编号", "箱号"},
}

var rxHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: lowercase, NBSP variants to space, strip punctuation,
// collapse spaces.
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", " ", " ", " ", "　", " ").Replace(s)
	s = rxHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the actual header for a canonical field: explicit mapping
// first, then exact normalized synonym, then containment either way (covers
// compound headers like "delivery address line").
func resolveKey(rec map[string]string, explicit, field string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if _, ok := rec[explicit]; ok {
			return explicit
		}
		nw := normHeaderKey(explicit)
		for k := range rec {
			if normHeaderKey(k) == nw {
				return k
			}
		}
	}

	wants := headerSynonyms[field]
	bestKey := ""
	bestScore := 0
	for k := range rec {
		nk := normHeaderKey(k)
		if nk == "" {
			continue
		}
		for _, wnt := range wants {
			nw := normHeaderKey(wnt)
			if nk == nw {
				return k
			}
			if strings.Contains(nk, nw) || strings.Contains(nw, nk) {
				if len(nw) > bestScore {
					bestScore, bestKey = len(nw), k
				}
			}
		}
	}
	return bestKey
}

// buildRecords maps raw table rows into Records. Canonical fields land under
// their canonical keys; every original column is preserved as-is too. Rows
// with no address and no name are dropped.
func buildRecords(rows []map[string]string, m model.Mapping) []model.Record {
	explicit := map[string]string{
		model.FieldName:         m.NameKey,
		model.FieldAddress:      m.AddressKey,
		model.FieldStreetNumber: m.StreetNumKey,
		model.FieldSuburb:       m.SuburbKey,
		model.FieldIdentifier:   m.IdentKey,
	}

	recs := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, len(row)+5)
		for k, v := range row {
			fields[k] = v
		}
		for canon, exp := range explicit {
			if key := resolveKey(row, exp, canon); key != "" {
				fields[canon] = strings.TrimSpace(row[key])
			}
		}
		if strings.TrimSpace(fields[model.FieldAddress]) == "" &&
			strings.TrimSpace(fields[model.FieldName]) == "" {
			continue
		}
		recs = append(recs, model.Record{Fields: fields, Index: len(recs)})
	}
	return recs
}

func atoi(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return v
	}
	return def
}
