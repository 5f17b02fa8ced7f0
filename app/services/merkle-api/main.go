package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/merkleviz/app/services/merkle-api/handlers"
	"github.com/ardanlabs/merkleviz/business/core/commit"
	"github.com/ardanlabs/merkleviz/business/core/commit/stores/disk"
	"github.com/ardanlabs/merkleviz/business/core/commit/stores/memory"
	"github.com/ardanlabs/merkleviz/business/core/indexer"
	idxmemory "github.com/ardanlabs/merkleviz/business/core/indexer/stores/memory"
	"github.com/ardanlabs/merkleviz/foundation/events"
	"github.com/ardanlabs/merkleviz/foundation/logger"
	"github.com/ardanlabs/merkleviz/foundation/playback"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("MERKLE-API")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			APIHost         string        `conf:"default:0.0.0.0:3000"`
			DebugHost       string        `conf:"default:0.0.0.0:4000"`
			CORSOrigin      string        `conf:"default:*"`
		}
		Commit struct {
			Store  string `conf:"default:memory,help:memory or disk"`
			DBPath string `conf:"default:zdata/commits/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "merkle tree visualization service",
		},
	}

	const prefix = "MERKLE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Events Support

	// Events raised by the business layer are logged and sent to any
	// websocket client connected to the events endpoint.
	evts := events.New()
	ev := func(kind string, format string, args ...any) {
		s := fmt.Sprintf(format, args...)
		log.Infow(s, "kind", kind, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(kind, "00000000-0000-0000-0000-000000000000", "%s", s)
	}

	// =========================================================================
	// Commit Support

	var storer commit.Storer
	switch cfg.Commit.Store {
	case "memory":
		storer = memory.New()

	case "disk":
		d, err := disk.New(cfg.Commit.DBPath)
		if err != nil {
			return fmt.Errorf("opening commit store: %w", err)
		}
		storer = d

	default:
		return fmt.Errorf("unknown commit store %q", cfg.Commit.Store)
	}

	log.Infow("startup", "status", "commit store ready", "store", cfg.Commit.Store)

	commitCore := commit.NewCore(log, storer, ev)

	// =========================================================================
	// Indexer Support

	proc := indexer.NewProcessor(log, idxmemory.NewTransfers(), idxmemory.NewBalances())

	// =========================================================================
	// Playback Support

	// Every playback session owns its own timer. The set is tracked here so
	// the running sessions can be stopped during shutdown.
	sessions := playback.NewSessions()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the API calls.
	apiMux, err := handlers.APIMux(handlers.APIMuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Commit:   commitCore,
		Indexer:  proc,
		Sessions: sessions,
		Evts:     evts,
		Origin:   cfg.Web.CORSOrigin,
	})
	if err != nil {
		return fmt.Errorf("constructing api mux: %w", err)
	}

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Stop every playback timer and release the web sockets.
		log.Infow("shutdown", "status", "stopping playback sessions", "sessions", sessions.Len())
		sessions.Shutdown()
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
