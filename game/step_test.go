package game

import "testing"

// zeroRand always picks the low end of any range.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func TestStepAdvancesTick(t *testing.T) {
	s := &State{Ball: &Ball{X: 100, Y: 100, Angle: 0, Speed: 10}}

	Step(s, nil, zeroRand{})
	if s.Tick != 1 {
		t.Fatalf("tick after 1 step = %d, want 1", s.Tick)
	}
	if s.Ball.X != 110 || s.Ball.Y != 100 {
		t.Fatalf("ball after 1 step = (%d,%d), want (110,100)", s.Ball.X, s.Ball.Y)
	}

	for i := 0; i < 4; i++ {
		Step(s, nil, zeroRand{})
	}
	if s.Tick != 5 {
		t.Fatalf("tick after 5 steps = %d, want 5", s.Tick)
	}
	if s.Ball.X != 150 {
		t.Fatalf("ball x after 5 steps = %d, want 150", s.Ball.X)
	}
}

func TestStepFirstPaddleWins(t *testing.T) {
	// Ball sits in the bottom-right corner band, reachable by both paddles.
	s := &State{Ball: &Ball{X: 685, Y: 685, Angle: 45, Speed: 0}}
	bottom := &Paddle{Side: Bottom, Position: 640}
	right := &Paddle{Side: Right, Position: 640}

	sides := Step(s, []*Paddle{bottom, right}, zeroRand{})

	if len(sides) != 0 {
		t.Fatalf("unexpected wall bounces: %v", sides)
	}
	if s.Ball.Y != BallMax-PaddleHeight {
		t.Fatalf("ball y = %d, want clamped to %d by bottom paddle", s.Ball.Y, BallMax-PaddleHeight)
	}
	if s.Ball.X != 685 {
		t.Fatalf("ball x = %d, right paddle should not have touched the ball", s.Ball.X)
	}
	if s.Ball.Angle != 200 || s.Ball.Speed != MinBallSpeed {
		t.Fatalf("angle/speed = %d/%d, want 200/%d", s.Ball.Angle, s.Ball.Speed, MinBallSpeed)
	}
}

func TestStepReportsWallBounce(t *testing.T) {
	s := &State{Ball: &Ball{X: 0, Y: 50, Angle: 170, Speed: 10}}

	sides := Step(s, nil, zeroRand{})

	if len(sides) != 1 || sides[0] != Left {
		t.Fatalf("sides = %v, want [left]", sides)
	}
	if s.Ball.X != 0 {
		t.Fatalf("ball x = %d, want clamped to 0", s.Ball.X)
	}
	if s.Ball.Angle != 10 {
		t.Fatalf("angle = %d, want 10", s.Ball.Angle)
	}
}

func TestBounceCorner(t *testing.T) {
	b := &Ball{X: -3, Y: BallMax + 4, Angle: 135, Speed: 10}

	sides := Bounce(b)

	if len(sides) != 2 || sides[0] != Left || sides[1] != Bottom {
		t.Fatalf("sides = %v, want [left bottom]", sides)
	}
	if b.X != 0 || b.Y != BallMax {
		t.Fatalf("ball = (%d,%d), want (0,%d)", b.X, b.Y, BallMax)
	}
	// 180-135 = 45, then negated.
	if b.Angle != -45 {
		t.Fatalf("angle = %d, want -45", b.Angle)
	}
}

func TestBounceInsideBoardIsNoop(t *testing.T) {
	b := &Ball{X: 10, Y: 10, Angle: 33, Speed: 7}
	if sides := Bounce(b); len(sides) != 0 {
		t.Fatalf("unexpected bounce %v", sides)
	}
	if *b != (Ball{X: 10, Y: 10, Angle: 33, Speed: 7}) {
		t.Fatalf("ball changed: %+v", *b)
	}
}
