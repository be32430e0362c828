package game

import "math"

type Ball struct {
	X, Y  int
	Angle int // degrees
	Speed int
}

// NewBall places a ball in the middle of the board heading into the lower
// half at the default speed.
func NewBall(r Rand) *Ball {
	return &Ball{
		X:     BallMax / 2,
		Y:     BallMax / 2,
		Angle: between(r, 20, 160),
		Speed: DefaultBallSpeed,
	}
}

// Advance moves the ball one step along its heading. Coordinates are
// truncated toward zero.
func (b *Ball) Advance() {
	rad := float64(b.Angle) * math.Pi / 180
	b.X = int(float64(b.X) + float64(b.Speed)*math.Cos(rad))
	b.Y = int(float64(b.Y) + float64(b.Speed)*math.Sin(rad))
}

func (b *Ball) rerollSpeed(r Rand) {
	b.Speed = between(r, MinBallSpeed, MaxBallSpeed)
}
