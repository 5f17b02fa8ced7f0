// Package handlers manages the different versions of the API.
package handlers

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/debug/checkgrp"
	v1 "github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/v1"
	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/viewer"
	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/business/core/indexer"
	"github.com/ardanlabs/merkleviz/business/web/mid"
	"github.com/ardanlabs/merkleviz/foundation/events"
	"github.com/ardanlabs/merkleviz/foundation/playback"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"go.uber.org/zap"
)

// APIMuxConfig contains all the mandatory systems required by handlers.
type APIMuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	Commit   *commit.Core
	Indexer  *indexer.Processor
	Sessions *playback.Sessions
	Evts     *events.Events
	Origin   string
}

// APIMux constructs a http.Handler with all application routes defined.
func APIMux(cfg APIMuxConfig) (http.Handler, error) {

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Cors(cfg.Origin),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests for every route.
	app.EnableCORS()

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:      cfg.Log,
		Commit:   cfg.Commit,
		Indexer:  cfg.Indexer,
		Sessions: cfg.Sessions,
		Evts:     cfg.Evts,
		Origin:   cfg.Origin,
	})

	// Load the viewer page.
	vh, err := viewer.New()
	if err != nil {
		return nil, err
	}
	viewer.Routes(app, vh)

	return app, nil
}

// DebugStandardLibraryMux registers all the debug routes from the standard library
// into a new mux bypassing the use of the DefaultServerMux. Using the
// DefaultServerMux would be a security risk since a dependency could inject a
// handler into our service without us knowing it.
func DebugStandardLibraryMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Register all the standard library debug endpoints.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	return mux
}

// DebugMux registers all the debug standard library routes and then custom
// debug application routes for the service. This bypassing the use of the
// DefaultServerMux. Using the DefaultServerMux would be a security risk since
// a dependency could inject a handler into our service without us knowing it.
func DebugMux(build string, log *zap.SugaredLogger) http.Handler {
	mux := DebugStandardLibraryMux()

	// Register debug check endpoints.
	cgh := checkgrp.Handlers{
		Build: build,
		Log:   log,
	}
	mux.HandleFunc("/debug/readiness", cgh.Readiness)
	mux.HandleFunc("/debug/liveness", cgh.Liveness)

	return mux
}
