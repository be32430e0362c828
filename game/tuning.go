package game

const (
	BoardSize        = 700
	BallSize         = 10
	PaddleLength     = 50
	PaddleHeight     = 10
	PaddleStep       = 5 // distance covered by one move command
	DefaultBallSpeed = 10
	MinBallSpeed     = 5
	MaxBallSpeed     = 15

	// BallMax is the largest coordinate the ball's top-left corner may take.
	BallMax = BoardSize - BallSize
	// PaddleMax is the largest offset a paddle may take along its edge.
	PaddleMax = BoardSize - PaddleLength
)
