package protocol

import (
	"encoding/json"
)

const (
	CommandMove = "move"

	EventGameState = "game_state"
	EventError     = "error"
)

// Move directions on the wire.
const (
	DirLeft  = 1
	DirRight = 2
)

const (
	SimTickHz = 60 // one snapshot per tick
)

// Envelope wraps every server to client message.
type Envelope struct {
	Data Event `json:"data"`
}

type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"` // raw payload bytes
}
