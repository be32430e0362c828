package session

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Info is returned by the API for the session list.
type Info struct {
	ID         string `json:"id"`
	Players    int    `json:"players"`
	Recruiting bool   `json:"recruiting"`
}

// Pool is the matchmaker. New players go to the single recruiting session;
// a fresh one is created when there is none, and a session stops recruiting
// once it fills up or empties.
type Pool struct {
	mu         sync.Mutex
	recruiting *Session
	sessions   map[string]*Session
	opts       Options
	logger     *slog.Logger
}

func NewPool(logger *slog.Logger, opts Options) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		sessions: make(map[string]*Session),
		opts:     opts,
		logger:   logger,
	}
}

// Acquire seats p in the recruiting session and returns it. The caller keeps
// the session for the life of the connection and hands it back to Release.
func (pl *Pool) Acquire(p *Player) (*Session, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.recruiting == nil {
		s := New(pl.logger, pl.opts)
		pl.recruiting = s
		pl.sessions[s.ID] = s
		pl.logger.Info("created new session", "session_id", s.ID)
	}
	s := pl.recruiting

	if err := s.AddPlayer(p); err != nil {
		return nil, fmt.Errorf("join session %s: %w", s.ID, err)
	}
	if s.IsFull() {
		pl.recruiting = nil
		pl.logger.Info("session full", "session_id", s.ID)
	}
	return s, nil
}

// Release takes p out of s. An emptied session is dropped and, if it was
// recruiting, the next Acquire starts a new one.
func (pl *Pool) Release(p *Player, s *Session) {
	if s == nil {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	s.RemovePlayer(p)
	if !s.IsEmpty() {
		return
	}
	delete(pl.sessions, s.ID)
	if pl.recruiting == s {
		pl.recruiting = nil
	}
	pl.logger.Info("session ended", "session_id", s.ID)
}

// Recruiting returns the session new players currently land in, if any.
func (pl *Pool) Recruiting() *Session {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.recruiting
}

// Sessions lists the live sessions ordered by ID.
func (pl *Pool) Sessions() []Info {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	out := make([]Info, 0, len(pl.sessions))
	for id, s := range pl.sessions {
		out = append(out, Info{ID: id, Players: s.NumPlayers(), Recruiting: s == pl.recruiting})
	}
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Close stops every live session.
func (pl *Pool) Close() {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	for id, s := range pl.sessions {
		s.Close()
		delete(pl.sessions, id)
	}
	pl.recruiting = nil
	pl.logger.Info("session pool closed")
}
