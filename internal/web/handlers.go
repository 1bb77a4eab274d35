package web

import (
	_ "embed"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/filter"
	"github.com/hpungsan/stringlens/internal/logging"
	"github.com/hpungsan/stringlens/internal/metrics"
	"github.com/hpungsan/stringlens/internal/ops"
	"github.com/hpungsan/stringlens/internal/store"
)

// livenessText is the plain-text body of GET /.
const livenessText = "String Analysis API is running!"

// maxBodyBytes caps POST /strings request bodies.
const maxBodyBytes = 1 << 20

//go:embed usage.md
var usageMarkdown string

// Handlers contains HTTP route handlers for the string API.
type Handlers struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Collector
	version string
}

// HandleIndex handles GET /: liveness text, or rendered usage for browsers.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, livenessText)
		return
	}

	body, err := renderMarkdown(usageMarkdown)
	if err != nil {
		renderError(w, r, h.logger, errors.NewInternal(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>stringlens "+h.version+"</title></head><body>\n")
	_, _ = w.Write(body)
	_, _ = io.WriteString(w, "</body></html>\n")
}

// HandleCreate handles POST /strings: analyze and store a string.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	value, err := decodeValue(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	rec, err := ops.Create(r.Context(), h.store, ops.CreateInput{Value: value})
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	logging.FromContext(r.Context(), h.logger).Debug("string created", slog.String("id", rec.ID))
	h.metrics.IncRecords()
	renderJSON(w, http.StatusCreated, rec)
}

// HandleGet handles GET /strings/{string_value}: fetch by exact value.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := ops.Get(r.Context(), h.store, ops.GetInput{Value: r.PathValue("string_value")})
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	renderJSON(w, http.StatusOK, rec)
}

// HandleList handles GET /strings: list with structured filters.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	f, err := filter.Parse(r.URL.Query())
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	result, err := ops.List(r.Context(), h.store, ops.ListInput{Filter: f})
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleNatural handles GET /strings/filter-by-natural-language: list with
// a plain-English query.
func (h *Handlers) HandleNatural(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := ops.ListNatural(r.Context(), h.store, ops.ListNaturalInput{Query: query})
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrUnparseableQuery):
			h.metrics.RecordNLQuery(metrics.OutcomeUnparseable)
		case errors.Is(err, errors.ErrInvalidRequest):
			h.metrics.RecordNLQuery(metrics.OutcomeMissing)
		}
		renderError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordNLQuery(metrics.OutcomeParsed)
	renderJSON(w, http.StatusOK, result)
}

// HandleDelete handles DELETE /strings/{string_value}: remove by exact value.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{Value: r.PathValue("string_value")})
	if err != nil {
		renderError(w, r, h.logger, err)
		return
	}

	logging.FromContext(r.Context(), h.logger).Debug("string deleted", slog.String("id", out.ID))
	h.metrics.DecRecords()
	w.WriteHeader(http.StatusNoContent)
}

// decodeValue reads the first property of a JSON object body, whatever its key.
// The whole body must be a single well-formed object: missing, malformed,
// non-object, or empty bodies are INVALID_REQUEST; a non-string first value is
// UNPROCESSABLE.
func decodeValue(body io.Reader) (string, error) {
	dec := json.NewDecoder(body)

	tok, err := dec.Token()
	if err == io.EOF {
		return "", errors.NewInvalidRequest(`Missing "value" field`)
	}
	if err != nil {
		return "", errors.NewInvalidRequest("Invalid JSON body")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", errors.NewInvalidRequest("Request body must be a JSON object")
	}
	if !dec.More() {
		if err := closeObject(dec); err != nil {
			return "", err
		}
		return "", errors.NewInvalidRequest(`Missing "value" field`)
	}

	var first json.RawMessage
	for i := 0; dec.More(); i++ {
		// Key
		if _, err := dec.Token(); err != nil {
			return "", errors.NewInvalidRequest("Invalid JSON body")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", errors.NewInvalidRequest("Invalid JSON body")
		}
		if i == 0 {
			first = raw
		}
	}
	if err := closeObject(dec); err != nil {
		return "", err
	}

	var value string
	if string(first) == "null" || json.Unmarshal(first, &value) != nil {
		return "", errors.NewUnprocessable(`"value" must be a string`)
	}

	return value, nil
}

// closeObject consumes the closing brace and requires nothing but
// whitespace after it.
func closeObject(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.NewInvalidRequest("Invalid JSON body")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '}' {
		return errors.NewInvalidRequest("Invalid JSON body")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.NewInvalidRequest("Invalid JSON body")
	}
	return nil
}
