package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	g "maragu.dev/gomponents"

	"github.com/TG-Note-App/tgauth/internal/view"
)

// writeError answers browsers with the error page and API clients with
// plain text.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if acceptsHTML(r) {
		renderPage(w, r, status, view.ErrorPage(status))
		return
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LoggerFrom(r.Context()).Error("error encoding response", "error", err)
	}
}

// renderPage buffers the page so a render failure can still become a 500.
func renderPage(w http.ResponseWriter, r *http.Request, status int, page g.Node) {
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		LoggerFrom(r.Context()).Error("failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
