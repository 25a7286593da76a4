package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoard       = errors.New("invalid board")
	ErrInvalidMove        = errors.New("invalid move")
	ErrInvalidStateLookup = errors.New("invalid state lookup")
)

// MoveFailure enumerates why a move was rejected.
type MoveFailure int

const (
	WrongPlayer MoveFailure = iota + 1
	ColumnOutOfRange
	ColumnFull
)

func (f MoveFailure) String() string {
	switch f {
	case WrongPlayer:
		return "wrong player"
	case ColumnOutOfRange:
		return "column out of range"
	case ColumnFull:
		return "column full"
	default:
		return fmt.Sprintf("MoveFailure(%d)", int(f))
	}
}

// InvalidMoveError is returned when a move cannot be applied to the board.
// Callers branch on Reason; errors.Is(err, ErrInvalidMove) holds for it.
type InvalidMoveError struct {
	Player int
	Column int
	Reason MoveFailure
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move by player %d in column %d: %s", e.Player, e.Column, e.Reason)
}

func (e *InvalidMoveError) Unwrap() error {
	return ErrInvalidMove
}

func invalidBoard(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidBoard, fmt.Sprintf(format, args...))
}

// ErrLineOutOfRange is returned for a diagonal or anti-diagonal index that does
// not intersect the board.
var ErrLineOutOfRange = errors.New("line index out of range")
