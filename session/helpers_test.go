package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pongy/game"
	"pongy/protocol"
)

// lowRand always picks the low end of any range.
type lowRand struct{}

func (lowRand) Intn(int) int { return 0 }

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// idle keeps the loop from ticking so tests can drive step by hand.
var idle = Options{TickRate: time.Hour, NewRand: func() game.Rand { return lowRand{} }}

var fast = Options{TickRate: 5 * time.Millisecond, NewRand: func() game.Rand { return lowRand{} }}

type fakeConn struct {
	sendCh chan []byte
	closed atomic.Bool
}

func newFakeConn(buf int) *fakeConn {
	return &fakeConn{sendCh: make(chan []byte, buf)}
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	select {
	case f.sendCh <- cp:
	default:
		// test is not reading; drop like a full socket buffer would
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

type brokenConn struct{}

func (brokenConn) Send([]byte) error { return errors.New("broken pipe") }
func (brokenConn) Close() error      { return nil }

type slowConn struct {
	block chan struct{}
}

func (s *slowConn) Send([]byte) error {
	<-s.block
	return nil
}
func (s *slowConn) Close() error { return nil }

// lingerConn takes a while over every send and records the ball positions
// it was handed, flagging any overlapping calls.
type lingerConn struct {
	inflight   atomic.Int32
	overlapped atomic.Bool

	mu    sync.Mutex
	balls [][2]int
}

func (l *lingerConn) Send(b []byte) error {
	if l.inflight.Add(1) > 1 {
		l.overlapped.Store(true)
	}
	defer l.inflight.Add(-1)

	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		return err
	}
	st, err := protocol.DecodePayload[protocol.GameState](env)
	if err != nil {
		return err
	}
	time.Sleep(3 * time.Millisecond)

	l.mu.Lock()
	l.balls = append(l.balls, st.Ball.Position)
	l.mu.Unlock()
	return nil
}

func (l *lingerConn) Close() error { return nil }

func (l *lingerConn) received() [][2]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][2]int(nil), l.balls...)
}

// logBuffer is a goroutine-safe log sink.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *logBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *logBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// nextState waits for the next game_state message on fc.
func nextState(t *testing.T, fc *fakeConn) protocol.GameState {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			require.NoError(t, err)
			if env.Data.Event != protocol.EventGameState {
				continue
			}
			st, err := protocol.DecodePayload[protocol.GameState](env)
			require.NoError(t, err)
			return st
		case <-timeout:
			t.Fatalf("timed out waiting for state broadcast")
		}
	}
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatalf("session %s loop still running", s.ID)
	}
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s := New(discard, opts)
	t.Cleanup(s.Close)
	return s
}
