package model

import "strings"

// Canonical record field keys. Extra columns are carried through untouched.
const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldStreetNumber = "streetNumber"
	FieldSuburb       = "suburb"
	FieldIdentifier   = "identifier"
)

// Matched-field categories used for ranking precedence.
const (
	FieldStreetAddress = "streetAddress"
)

type Policy string

const (
	PolicyStreetAddress Policy = "street_address" // number + address decomposition (default)
	PolicyMultiField    Policy = "multi_field"    // independent name/address/suburb scoring
)

// Mapping binds uploaded column headers to canonical fields.
type Mapping struct {
	NameKey      string
	AddressKey   string
	StreetNumKey string
	SuburbKey    string
	IdentKey     string
	HeaderRow    int // 1-based
}

type Options struct {
	Policy     Policy
	MaxResults int  // ranked list cap; 0 means default (8)
	Trace      bool // debug-level scoring narration via the injected logger
}

const DefaultMaxResults = 8

func (o Options) Limit() int {
	if o.MaxResults > 0 {
		return o.MaxResults
	}
	return DefaultMaxResults
}

// Record is one immutable reference-table row. Built once per upload,
// replaced wholesale on re-upload, never mutated in place.
type Record struct {
	Fields map[string]string `json:"fields"`
	Index  int               `json:"index"` // original row order, ranking tie-break
}

// Get reads a field; missing keys are empty strings, never an error.
func (r Record) Get(key string) string {
	if r.Fields == nil {
		return ""
	}
	return strings.TrimSpace(r.Fields[key])
}

// Query is one OCR recognition attempt. Confidence is 0-100 pass-through
// metadata from the OCR engine; it does not influence matching.
type Query struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// FieldScore is the transient per-field outcome while scoring one record.
type FieldScore struct {
	Field   string
	Score   float64
	Segment string // evidence substring out of the original query text
}

type MatchResult struct {
	Record        Record   `json:"record"`
	MatchedFields []string `json:"matchedFields"`
	Similarity    float64  `json:"similarity"`
	Confidence    float64  `json:"confidence"` // OCR engine confidence, 0-100
	QueryText     string   `json:"queryText"`
	Segment       string   `json:"matchedSegment"`
	Identifier    string   `json:"identifier,omitempty"`
}
