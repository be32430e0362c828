package network

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pongy/protocol"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4 << 10
	// Frames past this are cut off by the socket itself, without an error
	// event.
	maxFrameSize = 64 << 10
)

var (
	ErrSlowConsumer = errors.New("send buffer full")
	ErrConnClosed   = errors.New("connection closed")
)

// wsConn is a player's socket. The handler goroutine owns reads; writePump
// owns writes and drains send, so Send never blocks the session loop.
type wsConn struct {
	ws        *websocket.Conn
	send      chan []byte
	heartbeat time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	closed bool
}

func newWSConn(ws *websocket.Conn, buffer int, heartbeat time.Duration, logger *slog.Logger) *wsConn {
	return &wsConn{
		ws:        ws,
		send:      make(chan []byte, buffer),
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Send queues b for writing. A full queue drops the frame.
func (c *wsConn) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Close lets writePump flush what is queued, say goodbye and hang up.
func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	return nil
}

// fail queues an error event for the client ahead of Close.
func (c *wsConn) fail(err error) {
	b, encErr := protocol.EncodeError(err.Error())
	if encErr != nil {
		c.logger.Error("encode error event", "error", encErr)
		return
	}
	if err := c.Send(b); err != nil {
		c.logger.Debug("error event not delivered", "error", err)
	}
}

func (c *wsConn) pongWait() time.Duration {
	return 2 * c.heartbeat
}

// prepareRead applies the read limit and keeps the read deadline moving
// while the client answers pings.
func (c *wsConn) prepareRead() {
	c.ws.SetReadLimit(maxFrameSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.pongWait()))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.pongWait()))
	})
}

// readMessage returns the next message. Anything over maxMessageSize is
// rejected as malformed.
func (c *wsConn) readMessage() (int, []byte, error) {
	typ, r, err := c.ws.NextReader()
	var b []byte
	if err == nil {
		b, err = io.ReadAll(io.LimitReader(r, maxMessageSize+1))
	}
	if errors.Is(err, websocket.ErrReadLimit) {
		return 0, nil, fmt.Errorf("%w: %w", protocol.ErrMalformed, err)
	}
	if err != nil {
		return 0, nil, err
	}
	if len(b) > maxMessageSize {
		return 0, nil, fmt.Errorf("%w: message exceeds %d bytes", protocol.ErrMalformed, maxMessageSize)
	}
	return typ, b, nil
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(c.heartbeat)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case b, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, b); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ping failed", "error", err)
				return
			}
		}
	}
}
