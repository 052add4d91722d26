package network

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lixenwraith/pixel-angler/core"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/status"
)

type spectatorHandler struct {
	feed      Feed
	cfg       *Config
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	connected *atomic.Int64
	drops     *atomic.Int64

	mu       sync.Mutex
	sessions map[*session]struct{}
}

func newSpectatorHandler(src Sources, cfg *Config, logger *slog.Logger) *spectatorHandler {
	return &spectatorHandler{
		feed:   src.Feed,
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		connected: src.Registry.Counter(status.Spectators),
		drops:     src.Registry.Counter(status.SpectatorDrops),
		sessions:  make(map[*session]struct{}),
	}
}

// closeAll drops every live connection; their pumps exit on the resulting errors
func (h *spectatorHandler) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sess := range h.sessions {
		sess.conn.Close()
	}
}

// count returns the number of live sessions
func (h *spectatorHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// ServeHTTP upgrades and blocks in the write pump until the spectator leaves
func (h *spectatorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sess := &session{
		conn:  conn,
		cfg:   h.cfg,
		queue: make(chan engine.Snapshot, max(1, h.cfg.SendBuffer)),
		done:  make(chan struct{}),
		drops: h.drops,
	}

	h.mu.Lock()
	h.sessions[sess] = struct{}{}
	h.mu.Unlock()
	h.connected.Add(1)
	h.logger.Info("spectator connected", "remote", r.RemoteAddr)
	defer func() {
		h.mu.Lock()
		delete(h.sessions, sess)
		h.mu.Unlock()
		h.connected.Add(-1)
		h.logger.Info("spectator disconnected", "remote", r.RemoteAddr)
	}()

	// Subscribe before the hello frame so a client that saw hello cannot miss a publish
	if snap, ok := h.feed.Latest(); ok {
		sess.offer(snap)
	}
	unsubscribe := h.feed.Subscribe(h.cfg.BroadcastInterval, sess.offer)
	defer unsubscribe()

	hello := Frame{Ver: ProtocolVersion, Type: FrameHello, Interval: h.cfg.BroadcastInterval.Milliseconds()}
	if err := sess.writeFrame(hello); err != nil {
		conn.Close()
		return
	}

	core.Go(sess.readPump)
	sess.writePump()
	conn.Close()
}

// session is one spectator connection; gorilla allows one concurrent writer, the write pump
type session struct {
	conn  *websocket.Conn
	cfg   *Config
	queue chan engine.Snapshot
	done  chan struct{}
	drops *atomic.Int64
}

// offer enqueues without blocking the publisher; a full queue drops its oldest entry
func (s *session) offer(snap engine.Snapshot) {
	select {
	case s.queue <- snap:
		return
	default:
	}
	select {
	case <-s.queue:
		s.drops.Add(1)
	default:
	}
	select {
	case s.queue <- snap:
	default:
		s.drops.Add(1)
	}
}

func (s *session) writeFrame(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) writePump() {
	ping := time.NewTicker(s.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case snap := <-s.queue:
			if err := s.writeFrame(Frame{Ver: ProtocolVersion, Type: FrameSnapshot, Snapshot: &snap}); err != nil {
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// readPump discards inbound frames and signals done on close or pong timeout
func (s *session) readPump() {
	defer close(s.done)

	s.conn.SetReadLimit(s.cfg.ReadLimit)
	s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})
	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
	}
}
