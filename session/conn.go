package session

// Conn is the outbound half of a player's connection. Each player has its
// own sender goroutine, so a Send that blocks only holds back that player's
// frames, and frames it missed meanwhile are replaced by the newest one.
type Conn interface {
	Send([]byte) error
	Close() error
}
