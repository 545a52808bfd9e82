// Where: internal/server/handler.go
// What: The page handler and the error boundary.
// Why: Every failure becomes a bare 500; successful pages are written in one piece.
package server

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/poruru/infopage/internal/domain/page"
	"github.com/rs/zerolog/hlog"
)

const errorBody = "Internal Server Error"

// Gatherer builds the page context for a request.
type Gatherer interface {
	Gather(ctx context.Context) (page.Context, error)
}

// Renderer turns a page context into HTML.
type Renderer interface {
	Render(ctx page.Context) (string, error)
}

type pageHandler struct {
	gatherer Gatherer
	renderer Renderer
}

func (h pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.serve(w, r); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("page request failed")
		writeError(w)
	}
}

func (h pageHandler) serve(w http.ResponseWriter, r *http.Request) error {
	pageCtx, err := h.gatherer.Gather(r.Context())
	if err != nil {
		return err
	}
	body, err := h.renderer.Render(pageCtx)
	if err != nil {
		return err
	}
	header := w.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Content-Length", strconv.Itoa(len(body)))
	header.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
	return nil
}

func writeError(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = io.WriteString(w, errorBody+"\n")
}
