package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pongy/game"
	"pongy/protocol"
)

// MaxPlayers is one player per board side.
const MaxPlayers = 4

var (
	ErrNoCapacity    = errors.New("no available paddle")
	ErrAlreadyJoined = errors.New("player already in session")
	ErrNotAttached   = errors.New("player not in session")
	ErrClosed        = errors.New("session closed")
)

// Options tune the sessions a Pool creates.
type Options struct {
	TickRate time.Duration    // defaults to protocol.SimTickHz
	NewRand  func() game.Rand // defaults to a clock-seeded source
}

func (o Options) tickRate() time.Duration {
	if o.TickRate <= 0 {
		return time.Second / protocol.SimTickHz
	}
	return o.TickRate
}

func (o Options) rand() game.Rand {
	if o.NewRand == nil {
		return game.NewTimeRand()
	}
	return o.NewRand()
}

// Session is one match: up to four players, one ball and the loop that
// moves it. The loop starts with the session and stops once the last
// player leaves.
type Session struct {
	ID string

	mu        sync.Mutex
	players   []*Player      // join order, also the hit-test order
	available []*game.Paddle // claimed from the end
	state     *game.State
	rng       game.Rand

	senders errgroup.Group // one per attached player

	tickRate time.Duration
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(logger *slog.Logger, opts Options) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	rng := opts.rand()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID: id,
		available: []*game.Paddle{
			game.NewPaddle(game.Right),
			game.NewPaddle(game.Left),
			game.NewPaddle(game.Top),
			game.NewPaddle(game.Bottom),
		},
		state:    game.NewState(rng),
		rng:      rng,
		tickRate: opts.tickRate(),
		logger:   logger.With("session_id", id),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// Done is closed once the tick loop has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close stops the tick loop regardless of who is still attached.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
}

func (s *Session) NumPlayers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

func (s *Session) IsFull() bool {
	return s.NumPlayers() == MaxPlayers
}

func (s *Session) IsEmpty() bool {
	return s.NumPlayers() == 0
}

// AddPlayer attaches p and hands it one of the free paddles.
func (s *Session) AddPlayer(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return ErrClosed
	}
	if s.indexOf(p.Identity) >= 0 {
		return ErrAlreadyJoined
	}
	if len(s.available) == 0 {
		s.logger.Error("no available paddle", "player", p.Identity)
		return ErrNoCapacity
	}

	last := len(s.available) - 1
	p.Paddle = s.available[last]
	s.available = s.available[:last]
	s.players = append(s.players, p)

	p.outbox = make(chan []byte, 1)
	p.stop = make(chan struct{})
	outbox, stop := p.outbox, p.stop
	s.senders.Go(func() error {
		s.deliver(p, outbox, stop)
		return nil
	})

	s.logger.Debug("added player", "player", p.Identity, "side", p.Paddle.Side, "players", len(s.players))
	return nil
}

// RemovePlayer detaches the player with p's identity and frees its paddle.
// The loop is cancelled when nobody is left.
func (s *Session) RemovePlayer(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.Identity)
	if i < 0 {
		return
	}
	paddle := s.players[i].Paddle
	paddle.Reset()
	close(s.players[i].stop)
	s.available = append(s.available, paddle)
	s.players = slices.Delete(s.players, i, i+1)

	s.logger.Debug("removed player", "player", p.Identity, "players", len(s.players))
	if len(s.players) == 0 {
		s.cancel()
	}
}

// Move applies a move command to p's paddle right away, between ticks.
func (s *Session) Move(p *Player, d game.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(p.Identity)
	if i < 0 {
		return ErrNotAttached
	}
	return s.players[i].Paddle.Move(d)
}

func (s *Session) Snapshot() protocol.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) indexOf(identity string) int {
	return slices.IndexFunc(s.players, func(p *Player) bool {
		return p.Identity == identity
	})
}

func (s *Session) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	s.logger.Debug("session loop started", "tick", s.tickRate)
	for {
		select {
		case <-s.ctx.Done():
			s.senders.Wait()
			s.mu.Lock()
			s.logger.Debug("session loop stopped", "ticks", s.state.Tick)
			s.mu.Unlock()
			return
		case <-ticker.C:
			snapshot, outboxes := s.step()
			if len(outboxes) == 0 {
				continue
			}
			s.publish(snapshot, outboxes)
		}
	}
}

// step advances the physics one tick, settles the score and returns the
// resulting snapshot together with the outboxes to post it to.
func (s *Session) step() (protocol.GameState, []chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paddles := make([]*game.Paddle, len(s.players))
	outboxes := make([]chan []byte, len(s.players))
	for i, p := range s.players {
		paddles[i] = p.Paddle
		outboxes[i] = p.outbox
	}
	for _, side := range game.Step(s.state, paddles, s.rng) {
		s.bounce(side)
	}

	return s.snapshot(), outboxes
}

// bounce awards the point for a wall hit on side to whoever holds the
// paddle on that side. An empty side scores nothing.
func (s *Session) bounce(side game.Side) {
	for _, p := range s.players {
		if p.Paddle.Side == side {
			p.Score++
			s.logger.Debug("point", "player", p.Identity, "side", side, "score", p.Score, "tick", s.state.Tick)
			return
		}
	}
	s.logger.Debug("wall bounce", "side", side, "tick", s.state.Tick)
}

func (s *Session) snapshot() protocol.GameState {
	st := protocol.GameState{
		Players: make([]protocol.Player, 0, len(s.players)),
		Ball:    protocol.Ball{Position: [2]int{s.state.Ball.X, s.state.Ball.Y}},
	}
	for _, p := range s.players {
		st.Players = append(st.Players, protocol.Player{
			UUID:  p.Identity,
			Score: p.Score,
			Racket: protocol.Racket{
				Position: p.Paddle.Position,
				Side:     int(p.Paddle.Side),
			},
		})
	}
	return st
}

// publish encodes one snapshot and posts it to every outbox. A frame still
// waiting in an outbox is stale by now and gets replaced.
func (s *Session) publish(snapshot protocol.GameState, outboxes []chan []byte) {
	b, err := protocol.Encode(protocol.EventGameState, snapshot)
	if err != nil {
		s.logger.Error("encode snapshot", "error", err)
		return
	}
	for _, outbox := range outboxes {
		select {
		case outbox <- b:
			continue
		default:
		}
		select {
		case <-outbox:
		default:
		}
		// Only the loop posts, so the slot is free now.
		outbox <- b
	}
}

// deliver is a player's sender. It hands frames to the connection one at a
// time, in tick order, until the player leaves or the session stops. A failed
// send only costs that frame.
func (s *Session) deliver(p *Player, outbox <-chan []byte, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-s.ctx.Done():
			return
		case b := <-outbox:
			if err := p.conn.Send(b); err != nil {
				s.logger.Debug("send failed", "player", p.Identity, "error", err)
			}
		}
	}
}
