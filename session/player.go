package session

import "pongy/game"

// Player binds a connection identity to a score and, while attached to a
// session, to a paddle. Score and Paddle belong to the session once the
// player has joined; read them through Session.Snapshot.
type Player struct {
	Identity string
	Score    int
	Paddle   *game.Paddle

	conn   Conn
	outbox chan []byte   // latest unsent frame
	stop   chan struct{} // closed when the player leaves
}

func NewPlayer(identity string, conn Conn) *Player {
	return &Player{Identity: identity, conn: conn}
}
