package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"cashgap/internal/analysis"
	"cashgap/internal/config"
	"cashgap/internal/ledger"
)

// maxUploadSize caps the multipart form held in memory.
const maxUploadSize = 32 << 20 // 32 MiB

// errorResponse is the JSON error payload.
type errorResponse struct {
	Error          string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

type analyzeHandler struct {
	cfg *config.Config
	log zerolog.Logger
}

// ServeHTTP analyzes an uploaded ledger. Multipart fields:
//
//	file            the CSV upload (required)
//	reference_date  YYYY-MM-DD, defaults to today
//	ema_span        positive integer, defaults to the configured span
func (h *analyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.renderError(w, r, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, errors.New("missing 'file' upload field"))
		return
	}
	defer file.Close()

	opts, err := h.parseOptions(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	records, err := ledger.NewLoader(h.cfg.CurrencySymbol).Load(file)
	if err != nil {
		var missing *ledger.MissingColumnsError
		if errors.As(err, &missing) {
			h.log.Warn().
				Str("filename", header.Filename).
				Strs("missing_columns", missing.Columns).
				Msg("Upload rejected, required columns missing")
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, errorResponse{
				Error:          missing.Error(),
				MissingColumns: missing.Columns,
			})
			return
		}
		h.renderError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := analysis.Run(records, opts)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, err)
		return
	}

	h.log.Info().
		Str("filename", header.Filename).
		Int("records", len(records)).
		Msg("Ledger analyzed")

	render.JSON(w, r, result)
}

func (h *analyzeHandler) parseOptions(r *http.Request) (analysis.Options, error) {
	opts := analysis.Options{EMASpan: h.cfg.EMASpan}

	if value := r.FormValue("reference_date"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return opts, fmt.Errorf("invalid reference_date, use YYYY-MM-DD: %w", err)
		}
		opts.ReferenceDate = parsed
	}

	if value := r.FormValue("ema_span"); value != "" {
		span, err := strconv.Atoi(value)
		if err != nil || span < 1 {
			return opts, fmt.Errorf("invalid ema_span %q, must be a positive integer", value)
		}
		opts.EMASpan = span
	}

	return opts, nil
}

func (h *analyzeHandler) renderError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.Warn().Err(err).Int("status", status).Msg("Analyze request failed")
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}
