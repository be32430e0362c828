package game

// Step runs one physics tick: advance the ball, let the first paddle in
// order that catches it respond, then bounce it off the walls. It returns
// the walls the ball hit, in the order they were checked.
func Step(s *State, paddles []*Paddle, r Rand) []Side {
	s.Tick++
	s.Ball.Advance()

	for _, p := range paddles {
		if p.Hit(s.Ball, r) {
			break
		}
	}

	return Bounce(s.Ball)
}

// Bounce keeps the ball on the board, reflecting its heading off any wall it
// crossed.
func Bounce(b *Ball) []Side {
	var sides []Side
	if b.X < 0 {
		b.X = 0
		b.Angle = 180 - b.Angle
		sides = append(sides, Left)
	} else if b.X > BallMax {
		b.X = BallMax
		b.Angle = 180 - b.Angle
		sides = append(sides, Right)
	}
	if b.Y < 0 {
		b.Y = 0
		b.Angle = -b.Angle
		sides = append(sides, Top)
	} else if b.Y > BallMax {
		b.Y = BallMax
		b.Angle = -b.Angle
		sides = append(sides, Bottom)
	}
	return sides
}
