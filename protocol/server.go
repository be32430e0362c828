package protocol

type GameState struct {
	Players []Player `json:"players"`
	Ball    Ball     `json:"ball"`
}

type Player struct {
	UUID   string `json:"uuid"`
	Score  int    `json:"score"`
	Racket Racket `json:"racket"`
}

type Racket struct {
	Position int `json:"position"`
	Side     int `json:"side"` // 1 bottom, 2 top, 3 left, 4 right
}

type Ball struct {
	Position [2]int `json:"position"`
}

type Error struct {
	Message string `json:"message"`
}
