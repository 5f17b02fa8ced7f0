// Package viewer serves the browser page that plays back the construction
// of a tree using the v1 playback websocket.
package viewer

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/ardanlabs/merkleviz/foundation/web"
)

//go:embed assets
var assets embed.FS

// Handlers serves the viewer page and its assets.
type Handlers struct {
	index  []byte
	static http.Handler
}

// New loads the embedded page.
func New() (Handlers, error) {
	index, err := assets.ReadFile("assets/index.html")
	if err != nil {
		return Handlers{}, fmt.Errorf("loading index page: %w", err)
	}

	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		return Handlers{}, fmt.Errorf("loading assets: %w", err)
	}

	h := Handlers{
		index:  index,
		static: http.StripPrefix("/assets/", http.FileServer(http.FS(sub))),
	}

	return h, nil
}

// Routes binds the viewer routes.
func Routes(app *web.App, h Handlers) {
	app.Handle(http.MethodGet, "", "/", h.Index)
	app.Handle(http.MethodGet, "", "/assets/*filepath", h.Assets)
}

// Index returns the viewer page.
func (h Handlers) Index(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	web.SetStatusCode(ctx, http.StatusOK)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(h.index)

	return err
}

// Assets serves the static files the page depends on.
func (h Handlers) Assets(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	web.SetStatusCode(ctx, http.StatusOK)
	h.static.ServeHTTP(w, r)
	return nil
}
