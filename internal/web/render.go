package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hpungsan/stringlens/internal/errors"
	"github.com/hpungsan/stringlens/internal/logging"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError maps err to its status and writes {"error", "code"}.
// Internal causes are logged, never sent to the client.
func renderError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	lErr := errors.As(err)

	if lErr.Code == errors.ErrInternal {
		logging.FromContext(r.Context(), logger).Error("internal error",
			slog.String("path", r.URL.Path),
			slog.Any("details", lErr.Details),
		)
	}

	renderJSON(w, lErr.Status, errorBody{
		Error: lErr.Message,
		Code:  string(lErr.Code),
	})
}

// markdown renders GitHub-flavored markdown (tables, autolinks).
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown text to an HTML fragment using goldmark.
func renderMarkdown(md string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
