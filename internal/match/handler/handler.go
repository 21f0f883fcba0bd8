package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"labelmatch-service/internal/config"
	"labelmatch-service/internal/fileio"
	"labelmatch-service/internal/match/model"
	matchSvc "labelmatch-service/internal/match/service"
	"labelmatch-service/internal/match/store"
	"labelmatch-service/internal/utils"
)

// UploadRecords ingests one reference table (csv/xls/xlsx) and replaces the
// whole snapshot. Column mapping comes from the form; unmapped canonical
// fields are resolved against the actual headers.
func UploadRecords(cfg config.Config, logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		headerRow := atoi(r.FormValue("header_row"), 1)
		rows, err := fileio.ReadAnyMaps(file, header.Filename, headerRow)
		if err != nil {
			http.Error(w, "failed to read table: "+err.Error(), http.StatusBadRequest)
			return
		}

		m := model.Mapping{
			NameKey:      r.FormValue("name"),
			AddressKey:   r.FormValue("address"),
			StreetNumKey: r.FormValue("street_number"),
			SuburbKey:    r.FormValue("suburb"),
			IdentKey:     r.FormValue("identifier"),
			HeaderRow:    headerRow,
		}

		recs := buildRecords(rows, m)
		st.Replace(recs, header.Filename)

		writeJSON(w, log, map[string]any{
			"records": len(recs),
			"source":  header.Filename,
		})
		log.Info().
			Int("rows", len(rows)).
			Int("records", len(recs)).
			Str("file", header.Filename).
			Dur("elapsed", time.Since(start)).
			Msg("records uploaded")
	}
}

type matchRequest struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Limit      int     `json:"limit"`
	Policy     string  `json:"policy"`
	Trace      bool    `json:"trace"`
}

type matchResponse struct {
	Results []model.MatchResult `json:"results"`
	Count   int                 `json:"count"`
}

// Match runs one OCR query against the current snapshot.
func Match(cfg config.Config, logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	ident := utils.NewIdentExtractor(cfg.IDMarker)
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		defer r.Body.Close()
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		opt := model.Options{
			Policy:     model.Policy(req.Policy),
			MaxResults: req.Limit,
			Trace:      req.Trace,
		}
		eng := matchSvc.NewEngine(opt, log)
		results := eng.FindMatches(
			model.Query{Text: req.Text, Confidence: req.Confidence},
			st.Snapshot(),
		)
		for i := range results {
			results[i].Identifier = ident.Extract(results[i].Record.Get(model.FieldIdentifier))
		}

		writeJSON(w, log, matchResponse{Results: results, Count: len(results)})
		log.Info().
			Int("records", len(st.Snapshot())).
			Int("matches", len(results)).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// ClearRecords discards the snapshot.
func ClearRecords(logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st.Clear()
		log := reqLogger(logger, r)
		log.Info().Msg("records cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// RecordStats reports snapshot size and provenance.
func RecordStats(logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reqLogger(logger, r), st.Stats())
	}
}

func reqLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := r.Header.Get("X-Request-ID"); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}
