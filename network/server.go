package network

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pongy/game"
	"pongy/protocol"
	"pongy/session"
)

// IdentityCookie carries the opaque player identity.
const IdentityCookie = "player_id"

var ErrNoIdentity = errors.New("missing player_id cookie")

type Options struct {
	SendBuffer  int
	Heartbeat   time.Duration
	CheckOrigin func(r *http.Request) bool // nil allows every origin
}

// Server admits WebSocket clients into the session pool and relays their
// move commands.
type Server struct {
	pool     *session.Pool
	logger   *slog.Logger
	opts     Options
	upgrader websocket.Upgrader
}

func NewServer(pool *session.Pool, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 16
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = 10 * time.Second
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Server{
		pool:   pool,
		logger: logger,
		opts:   opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /sessions", s.handleSessions)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.pool.Sessions())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := newWSConn(ws, s.opts.SendBuffer, s.opts.Heartbeat, s.logger.With("remote", r.RemoteAddr))
	go c.writePump()
	defer c.Close()

	if err := s.serve(r, c); err != nil {
		s.logger.Warn("closing connection", "remote", r.RemoteAddr, "error", err)
		c.fail(err)
	}
}

// serve runs one player from admission to disconnect. The player is always
// released before serve returns, whatever ended the connection.
func (s *Server) serve(r *http.Request, c *wsConn) error {
	cookie, err := r.Cookie(IdentityCookie)
	if err != nil || cookie.Value == "" {
		return ErrNoIdentity
	}

	player := session.NewPlayer(cookie.Value, c)
	sess, err := s.pool.Acquire(player)
	if err != nil {
		return err
	}
	defer s.pool.Release(player, sess)

	logger := s.logger.With("player", player.Identity, "session_id", sess.ID)
	logger.Info("player joined")

	c.prepareRead()
	for {
		typ, msg, err := c.readMessage()
		if errors.Is(err, protocol.ErrMalformed) {
			return err
		}
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logger.Debug("read failed", "error", err)
			}
			logger.Info("player left")
			return nil
		}
		if typ != websocket.TextMessage {
			continue
		}

		m, err := protocol.DecodeMove(msg)
		if err != nil {
			return err
		}
		if err := sess.Move(player, game.Direction(m.Direction)); err != nil {
			return err
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
