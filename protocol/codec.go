package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks inbound messages that cannot be acted on.
var ErrMalformed = errors.New("malformed message")

func Encode(event string, payload any) ([]byte, error) {
	if event == "" {
		return nil, fmt.Errorf("trying to encode empty event type")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{Data: Event{Event: event, Payload: pb}})
}

// EncodeError builds the error event sent before the server drops a client.
func EncodeError(msg string) ([]byte, error) {
	return Encode(EventError, Error{Message: msg})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data.Payload) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.Data.Event)
	}
	err := json.Unmarshal(env.Data.Payload, &out)
	return out, err
}

// DecodeMove parses a move command. Every failure wraps ErrMalformed.
func DecodeMove(b []byte) (Move, error) {
	var c Command
	if err := json.Unmarshal(b, &c); err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.Command != CommandMove {
		return Move{}, fmt.Errorf("%w: unknown command %q", ErrMalformed, c.Command)
	}
	if len(c.Payload) == 0 || string(c.Payload) == "null" {
		return Move{}, fmt.Errorf("%w: missing payload", ErrMalformed)
	}
	var m Move
	if err := json.Unmarshal(c.Payload, &m); err != nil {
		return Move{}, fmt.Errorf("%w: payload: %v", ErrMalformed, err)
	}
	if m.Direction != DirLeft && m.Direction != DirRight {
		return Move{}, fmt.Errorf("%w: invalid direction %d", ErrMalformed, m.Direction)
	}
	return m, nil
}
