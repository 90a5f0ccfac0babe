package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"home_climate/internal/logger"
	"home_climate/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingEvery  = wsPongWait * 9 / 10
	wsReadLimit  = 4 << 10
	defaultEvery = 2 * time.Second
	maxEvery     = time.Minute
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// snapshot is what dashboards render: both singletons plus the newest reading.
type snapshot struct {
	ACSettings    models.ACSettings    `json:"ac_settings"`
	ActuatorState models.ActuatorState `json:"actuator_state"`
	Latest        *models.Telemetry    `json:"latest"`
}

// The dashboard is served from arbitrary local hosts, so any origin is accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// @Summary      Snapshot stream
// @Description  WebSocket pushing {ac_settings, actuator_state, latest} every ?interval (Go duration) or ?interval_ms, default 2s, max 1m.
// @Tags         system
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	every := snapshotEvery(c)
	log := logger.OrNop(h.log)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	s := &snapshotStream{conn: conn, load: h.loadSnapshot, log: log}
	defer func() { _ = conn.Close() }()

	s.run(c.Request.Context(), every)
}

// snapshotEvery reads ?interval=2s, falling back to ?interval_ms=2000.
// Values outside (0, maxEvery] are ignored.
func snapshotEvery(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxEvery {
			return d
		}
	}
	if s := c.Query("interval_ms"); s != "" {
		if ms, err := strconv.Atoi(s); err == nil && ms > 0 && time.Duration(ms)*time.Millisecond <= maxEvery {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultEvery
}

type snapshotStream struct {
	conn *websocket.Conn
	load func(context.Context) (snapshot, error)
	log  *logger.Logger
}

func (s *snapshotStream) run(ctx context.Context, every time.Duration) {
	s.conn.SetReadLimit(wsReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	closed := s.drain()

	if err := s.push(ctx); err != nil {
		s.log.Infow("ws_write_failed", "err", err, "initial", true)
		return
	}

	tick := time.NewTicker(every)
	defer tick.Stop()
	ping := time.NewTicker(wsPingEvery)
	defer ping.Stop()

	for {
		var err error
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		case <-tick.C:
			err = s.push(ctx)
		}
		if err != nil {
			s.log.Infow("ws_write_failed", "err", err)
			return
		}
	}
}

// drain reads until the peer goes away so control frames get handled.
// The returned channel closes on disconnect.
func (s *snapshotStream) drain() <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := s.conn.ReadMessage(); err != nil {
				s.log.Debugw("ws_read_closed", "err", err)
				return
			}
		}
	}()
	return closed
}

// push writes one snapshot. A load failure becomes an error frame and keeps
// the stream open.
func (s *snapshotStream) push(ctx context.Context) error {
	env := wsEnvelope{Type: "snapshot"}
	if snap, err := s.load(ctx); err != nil {
		s.log.Errorw("ws_snapshot_failed", "err", err)
		env = wsEnvelope{Type: "error", Error: "failed to load snapshot"}
	} else {
		env.Data = snap
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return s.conn.WriteJSON(env)
}

func (h *Handler) loadSnapshot(ctx context.Context) (snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.ACSettings, err = h.services.Climate.GetSettings(ctx); err != nil {
		return snapshot{}, fmt.Errorf("load ac settings: %w", err)
	}
	if snap.ActuatorState, err = h.services.Actuator.GetState(ctx); err != nil {
		return snapshot{}, fmt.Errorf("load actuator state: %w", err)
	}
	if snap.Latest, err = h.services.Telemetry.Latest(ctx); err != nil {
		return snapshot{}, fmt.Errorf("load latest reading: %w", err)
	}
	return snap, nil
}
