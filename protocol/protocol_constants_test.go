package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	if CommandMove != "move" {
		t.Fatalf("CommandMove = %q, want %q", CommandMove, "move")
	}
	if EventGameState != "game_state" {
		t.Fatalf("EventGameState = %q, want %q", EventGameState, "game_state")
	}
	if EventError != "error" {
		t.Fatalf("EventError = %q, want %q", EventError, "error")
	}
}

func TestDirectionConstants(t *testing.T) {
	if DirLeft != 1 || DirRight != 2 {
		t.Fatalf("directions = %d/%d, want 1/2", DirLeft, DirRight)
	}
}

func TestTimingSanity(t *testing.T) {
	if SimTickHz <= 0 {
		t.Fatalf("SimTickHz must be > 0")
	}
}
