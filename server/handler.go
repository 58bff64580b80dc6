package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/hedger/analysis"
	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/locale"
	"github.com/rustyeddy/hedger/pricing"
)

// Analyzer is the part of *analysis.Analyzer the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, trade analysis.Trade) (*analysis.Report, error)
	Rate(ctx context.Context) (pricing.Tick, error)
}

type Handler struct {
	analyzer Analyzer
	journal  journal.Journal
	reader   journal.Reader
	locale   *locale.Locale
}

func NewHandler(deps Dependencies) *Handler {
	loc := deps.Locale
	if loc == nil {
		loc = locale.English
	}
	return &Handler{
		analyzer: deps.Analyzer,
		journal:  deps.Journal,
		reader:   deps.Reader,
		locale:   loc,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateAnalysis analyzes the posted trade. With ?format=text the rendered
// report is returned instead of JSON; ?lang= picks its language.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var trade analysis.Trade
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&trade); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.analyzer.Analyze(ctx, trade)
	if err != nil {
		if analysis.IsInvalid(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().Err(err).Msg("analysis failed")
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}

	if h.journal != nil {
		if err := h.journal.RecordAnalysis(ctx, journal.FromReport(report)); err != nil {
			logger.Error().Err(err).Str("id", report.ID).Msg("failed to journal analysis")
			writeError(w, r, http.StatusInternalServerError, "could not store analysis")
			return
		}
	}

	if r.URL.Query().Get("format") == "text" {
		loc := h.locale
		if lang := r.URL.Query().Get("lang"); lang != "" {
			l, err := locale.Parse(lang)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			loc = l
		}

		var buf bytes.Buffer
		if err := analysis.Render(&buf, report, loc); err != nil {
			logger.Error().Err(err).Msg("failed to render report")
			writeError(w, r, http.StatusInternalServerError, "could not render report")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Location", "/api/v1/analyses/"+report.ID)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(buf.Bytes())
		return
	}

	w.Header().Set("Location", "/api/v1/analyses/"+report.ID)
	writeJSON(w, r, http.StatusCreated, report)
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	if h.reader == nil {
		writeError(w, r, http.StatusNotFound, "journal is not queryable")
		return
	}

	rec, err := h.reader.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		logger.Error().Err(err).Str("id", id).Msg("failed to load analysis")
		writeError(w, r, http.StatusInternalServerError, "could not load analysis")
		return
	}

	writeJSON(w, r, http.StatusOK, rec)
}

func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	tick, err := h.analyzer.Rate(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("rate lookup failed")
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, tick)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}
