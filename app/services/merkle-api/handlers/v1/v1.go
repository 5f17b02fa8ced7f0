// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/v1/commitgrp"
	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/v1/indexergrp"
	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/v1/playgrp"
	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers/v1/treegrp"
	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/business/core/indexer"
	"github.com/ardanlabs/merkleviz/foundation/events"
	"github.com/ardanlabs/merkleviz/foundation/playback"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	Commit   *commit.Core
	Indexer  *indexer.Processor
	Sessions *playback.Sessions
	Evts     *events.Events
	Origin   string
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	tgh := treegrp.Handlers{
		Log: cfg.Log,
	}

	app.Handle(http.MethodPost, version, "/trees", tgh.Build)
	app.Handle(http.MethodPost, version, "/trees/diff", tgh.Diff)
	app.Handle(http.MethodPost, version, "/trees/steps", tgh.Steps)
	app.Handle(http.MethodPost, version, "/trees/proof", tgh.Proof)

	cgh := commitgrp.Handlers{
		Log:    cfg.Log,
		Commit: cfg.Commit,
	}

	app.Handle(http.MethodGet, version, "/commits", cgh.Query)
	app.Handle(http.MethodPost, version, "/commits", cgh.Create)
	app.Handle(http.MethodGet, version, "/commits/:id", cgh.QueryByID)
	app.Handle(http.MethodPost, version, "/commits/:id/reveal", cgh.Reveal)

	igh := indexergrp.Handlers{
		Log:     cfg.Log,
		Indexer: cfg.Indexer,
	}

	app.Handle(http.MethodPost, version, "/indexer/logs", igh.Process)
	app.Handle(http.MethodGet, version, "/indexer/transfers", igh.Transfers)
	app.Handle(http.MethodGet, version, "/indexer/balances/:account", igh.Balances)

	pgh := playgrp.Handlers{
		Log:      cfg.Log,
		Sessions: cfg.Sessions,
		Evts:     cfg.Evts,
		WS: websocket.Upgrader{
			CheckOrigin: checkOrigin(cfg.Origin),
		},
	}

	app.Handle(http.MethodGet, version, "/playback", pgh.Playback)
	app.Handle(http.MethodPost, version, "/playback/:id/stop", pgh.Stop)
	app.Handle(http.MethodGet, version, "/events", pgh.Events)
}

// checkOrigin allows every origin when configured with "*", otherwise only
// the configured origin.
func checkOrigin(origin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		return origin == "*" || r.Header.Get("Origin") == origin
	}
}
