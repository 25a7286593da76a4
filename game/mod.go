package game

// Cell values stored on the board. A cell holds the id of the player who
// occupies it, or Empty.
const (
	Empty   = 0
	Player1 = 1
	Player2 = 2
)

// InARow is the number of consecutive pieces that wins the game.
const InARow = 4

// MaxRows bounds the board height so that a column's colours fit one word.
const MaxRows = 64

// Opponent returns the other player.
func Opponent(player int) int {
	if player == Player1 {
		return Player2
	}
	return Player1
}

// IsPlayer reports whether v is a valid player id.
func IsPlayer(v int) bool {
	return v == Player1 || v == Player2
}

// Position locates a cell, row 0 being the bottom of the board.
type Position struct {
	Row    int
	Column int
}
