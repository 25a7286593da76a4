package engine

import (
	"errors"
	"time"

	"connect4/experiments/metrics"
)

var ErrTooManyRetries = errors.New("too many rejected moves")

// Result describes a finished game.
type Result struct {
	ID          string
	Winner      int // Player ID, 0 for a draw
	Draw        bool
	Moves       []int // Columns in the order they were played
	Start       time.Time
	End         time.Time
	MoveMetrics []metrics.MoveMetric
}

func (r Result) GameMetric(startingPlayer int) metrics.GameMetric {
	return metrics.GameMetric{
		ID:             r.ID,
		StartingPlayer: startingPlayer,
		Winner:         r.Winner,
		StartTime:      r.Start,
		EndTime:        r.End,
		Duration:       r.End.Sub(r.Start),
		TotalMoves:     len(r.Moves),
	}
}
