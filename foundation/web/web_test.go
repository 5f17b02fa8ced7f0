package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/merkleviz/foundation/web"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_App(t *testing.T) {
	shutdown := make(chan os.Signal, 1)

	var order []string
	mw := func(name string) web.Middleware {
		return func(handler web.Handler) web.Handler {
			return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				order = append(order, name)
				return handler(ctx, w, r)
			}
		}
	}

	app := web.NewApp(shutdown, mw("app"))

	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		v, err := web.GetValues(ctx)
		if err != nil || v.TraceID == "" {
			return web.NewShutdownError("web value missing from context")
		}
		return web.Respond(ctx, w, map[string]string{"id": web.Param(r, "id")}, http.StatusOK)
	}
	app.Handle(http.MethodGet, "v1", "/items/:id", h, mw("route"))

	fail := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.NewShutdownError("integrity issue")
	}
	app.Handle(http.MethodGet, "v1", "/fail", fail)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/items/42", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"42"`) {
		t.Fatalf("\t%s\tShould route to the handler with its parameters: %d %s", failed, w.Code, w.Body.String())
	}
	t.Logf("\t%s\tShould route to the handler with its parameters.", success)

	if len(order) != 2 || order[0] != "app" || order[1] != "route" {
		t.Fatalf("\t%s\tShould run app middleware before route middleware: %v", failed, order)
	}
	t.Logf("\t%s\tShould run app middleware before route middleware.", success)

	app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/fail", nil))
	select {
	case <-shutdown:
		t.Logf("\t%s\tShould signal shutdown on a shutdown error.", success)
	default:
		t.Fatalf("\t%s\tShould signal shutdown on a shutdown error.", failed)
	}
}

func Test_Shutdown(t *testing.T) {
	err := errors.Join(errors.New("other"), web.NewShutdownError("stop"))
	if !web.IsShutdown(err) {
		t.Fatalf("\t%s\tShould find the shutdown error in the chain.", failed)
	}
	if web.IsShutdown(errors.New("other")) {
		t.Fatalf("\t%s\tShould not find a shutdown error in a plain error.", failed)
	}
	t.Logf("\t%s\tShould detect shutdown errors.", success)
}
