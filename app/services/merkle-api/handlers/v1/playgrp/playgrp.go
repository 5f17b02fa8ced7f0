// Package playgrp maintains the group of handlers that stream tree
// construction and service events over websockets.
package playgrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ardanlabs/merkleviz/business/web/errs"
	"github.com/ardanlabs/merkleviz/foundation/events"
	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/ardanlabs/merkleviz/foundation/playback"
	"github.com/ardanlabs/merkleviz/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Playback speed limits.
const (
	defaultInterval = 500 * time.Millisecond
	minInterval     = 10 * time.Millisecond
)

// Handlers manages the set of websocket endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	Sessions *playback.Sessions
	Evts     *events.Events
	WS       websocket.Upgrader
}

// Playback builds the tree for the labels query parameter and streams each
// construction step over a websocket, one per interval. The first message
// carries the session id that can be used to stop the playback early.
func (h Handlers) Playback(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	labels := splitLabels(r.URL.Query().Get("labels"))
	tree, err := merkle.Build(labels)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	interval, err := parseInterval(r.URL.Query().Get("interval"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	s, err := h.Sessions.Start(ctx, merkle.Steps(tree), interval)
	if err != nil {
		h.Log.Errorw("playback", "traceid", v.TraceID, "ERROR", err)
		return nil
	}
	defer s.Stop()

	h.Log.Infow("playback", "traceid", v.TraceID, "status", "started", "session", s.ID, "steps", tree.Depth()+1)
	h.Evts.Send("playback", v.TraceID, "session[%s] started root[%s]", s.ID, tree.Root())

	// The client never sends anything we care about but reading is how a
	// closed connection is detected.
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				s.Stop()
				return
			}
		}
	}()

	hello := sessionMessage{Session: s.ID, Root: tree.Root(), Interval: interval.String()}
	if err := c.WriteJSON(hello); err != nil {
		h.Log.Infow("playback", "traceid", v.TraceID, "status", "client gone", "ERROR", err)
		return nil
	}

	for step := range s.C() {
		if err := c.WriteJSON(step); err != nil {
			h.Log.Infow("playback", "traceid", v.TraceID, "status", "client gone", "ERROR", err)
			return nil
		}
	}

	c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "playback complete"))
	h.Log.Infow("playback", "traceid", v.TraceID, "status", "finished", "session", s.ID)

	return nil
}

// Stop halts the playback session with the specified id.
func (h Handlers) Stop(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id := web.Param(r, "id")

	if !h.Sessions.Stop(id) {
		return errs.NewNotFound(fmt.Errorf("session %q is not running", id))
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "playback stopped",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide service events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case e, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(e); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

type sessionMessage struct {
	Session  string        `json:"session"`
	Root     merkle.Digest `json:"root"`
	Interval string        `json:"interval"`
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return defaultInterval, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing interval: %w", err)
	}

	if d < minInterval {
		return 0, errors.New("interval must be at least " + minInterval.String())
	}

	return d, nil
}
