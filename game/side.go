package game

import "fmt"

// Side is the board edge a paddle defends. The values double as wire codes.
type Side int

const (
	Bottom Side = 1
	Top    Side = 2
	Left   Side = 3
	Right  Side = 4
)

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Direction is a move along the paddle's own axis, whichever edge it sits on.
type Direction int

const (
	MoveLeft  Direction = 1
	MoveRight Direction = 2
)

func (d Direction) Valid() bool {
	return d == MoveLeft || d == MoveRight
}
