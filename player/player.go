package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

// MoveSource supplies a column for the board's current player.
// Implementations must not mutate board.
type MoveSource interface {
	GetMove(board *game.Board, legalMoves []int) (int, error)
	String() string
}

// Measured is implemented by move sources that report how they found their last move.
type Measured interface {
	LastMetric() metrics.SearchMetric
}

// Make maps a player kind (h, human, m, mcts) to a move source.
// Human sources read from in and prompt on out; MCTS sources apply options.
func Make(kind string, in *bufio.Scanner, out io.Writer, options ...searcher.Option) (MoveSource, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "h", "human":
		return NewHuman(in, out), nil
	case "m", "mcts":
		return NewMCTS(options...), nil
	default:
		return nil, fmt.Errorf("unknown player kind %q, want one of h, human, m, mcts", kind)
	}
}
