package protocol

import "encoding/json"

// input structs coming in from the client.

type Command struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload"`
}

type Move struct {
	Direction int `json:"direction"` // DirLeft or DirRight
}
