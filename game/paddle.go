package game

import "fmt"

type Paddle struct {
	Side     Side
	Position int // offset along the paddle's edge, [0, PaddleMax]
}

func NewPaddle(side Side) *Paddle {
	return &Paddle{Side: side, Position: PaddleMax / 2}
}

// Reset puts the paddle back in the middle of its edge.
func (p *Paddle) Reset() {
	p.Position = PaddleMax / 2
}

// Move shifts the paddle one step, clamping at either end of the edge.
func (p *Paddle) Move(d Direction) error {
	if !d.Valid() {
		return fmt.Errorf("invalid direction %d", int(d))
	}
	if d == MoveLeft {
		p.Position = max(p.Position-PaddleStep, 0)
	} else {
		p.Position = min(p.Position+PaddleStep, PaddleMax)
	}
	return nil
}

// hitRule describes how a paddle on one side catches the ball.
type hitRule struct {
	crossed func(b *Ball) bool // ball reached the defended band
	along   func(b *Ball) int  // ball coordinate along the paddle's edge
	clamp   func(b *Ball)      // pin the ball to the band boundary
	minDeg  int                // return arc
	maxDeg  int
}

var hitRules = map[Side]hitRule{
	Bottom: {
		crossed: func(b *Ball) bool { return b.Y >= BallMax-PaddleHeight },
		along:   func(b *Ball) int { return b.X },
		clamp:   func(b *Ball) { b.Y = BallMax - PaddleHeight },
		minDeg:  200,
		maxDeg:  340,
	},
	Top: {
		crossed: func(b *Ball) bool { return b.Y <= PaddleHeight },
		along:   func(b *Ball) int { return b.X },
		clamp:   func(b *Ball) { b.Y = PaddleHeight },
		minDeg:  20,
		maxDeg:  160,
	},
	Left: {
		crossed: func(b *Ball) bool { return b.X <= PaddleHeight },
		along:   func(b *Ball) int { return b.Y },
		clamp:   func(b *Ball) { b.X = PaddleHeight },
		minDeg:  -70,
		maxDeg:  70,
	},
	Right: {
		crossed: func(b *Ball) bool { return b.X >= BallMax-PaddleHeight },
		along:   func(b *Ball) int { return b.Y },
		clamp:   func(b *Ball) { b.X = BallMax - PaddleHeight },
		minDeg:  110,
		maxDeg:  250,
	},
}

// Hit reports whether the paddle caught the ball. A caught ball is pinned to
// the paddle's band and sent back into the field at a random angle and speed.
func (p *Paddle) Hit(b *Ball, r Rand) bool {
	rule, ok := hitRules[p.Side]
	if !ok || !rule.crossed(b) {
		return false
	}
	at := rule.along(b)
	if at < p.Position-BallSize || at > p.Position+PaddleLength+BallSize {
		return false
	}
	rule.clamp(b)
	b.Angle = between(r, rule.minDeg, rule.maxDeg)
	b.rerollSpeed(r)
	return true
}
