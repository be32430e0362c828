package game

// Internal truth authoritative physics state of one session.

type State struct {
	Tick int
	Ball *Ball
}

func NewState(r Rand) *State {
	return &State{Ball: NewBall(r)}
}
