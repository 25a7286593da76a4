package game

import (
	"fmt"
	"strings"

	"connect4/meta"
)

// stack is one column of the board. Pieces only ever land on top, so a column
// is its height plus one colour bit per occupied row.
type stack struct {
	colours uint64 // bit r set when the piece at row r belongs to Player2
	height  int
}

func (s stack) at(row int) int {
	if row >= s.height {
		return Empty
	}
	if s.colours&(1<<uint(row)) != 0 {
		return Player2
	}
	return Player1
}

func (s stack) push(player int) stack {
	if player == Player2 {
		s.colours |= 1 << uint(s.height)
	}
	s.height++
	return s
}

// Board is a Connect-Four board of rows x columns cells, played bottom-up.
type Board struct {
	rows    int
	stacks  []stack
	current int
	last    Position
	hasLast bool
}

type Option func(b *Board)

// WithSize sets the board dimensions.
func WithSize(rows, columns int) Option {
	return func(b *Board) {
		b.rows = rows
		b.stacks = make([]stack, columns)
	}
}

// WithCurrentPlayer sets the player to move first.
func WithCurrentPlayer(player int) Option {
	return func(b *Board) {
		b.current = player
	}
}

// NewBoard returns an empty board, 6x7 with player 1 to move unless
// configured otherwise. It panics on impossible dimensions or player ids.
func NewBoard(options ...Option) *Board {
	b := &Board{ // Default values
		rows:    meta.ROWS,
		stacks:  make([]stack, meta.COLUMNS),
		current: Player1,
	}
	for _, option := range options {
		option(b)
	}
	if b.rows < 1 || b.rows > MaxRows || len(b.stacks) < 1 {
		panic(fmt.Sprintf("unsupported board size %dx%d", b.rows, len(b.stacks)))
	}
	if !IsPlayer(b.current) {
		panic(fmt.Sprintf("unknown player %d", b.current))
	}
	return b
}

// FromColumns builds a board from externally supplied columns, each listed
// bottom to top. The number of columns must match the board width, no column
// may exceed the board height and every cell must hold a player id.
func FromColumns(columns [][]int, options ...Option) (*Board, error) {
	b := NewBoard(options...)
	if len(columns) != len(b.stacks) {
		return nil, invalidBoard("invalid board size: %d columns, want %d", len(columns), len(b.stacks))
	}
	for c, column := range columns {
		if len(column) > b.rows {
			return nil, invalidBoard("invalid board size: column %d holds %d pieces, max %d", c, len(column), b.rows)
		}
		for r, v := range column {
			if !IsPlayer(v) {
				return nil, invalidBoard("invalid value %v at column %d row %d", v, c, r)
			}
			b.stacks[c] = b.stacks[c].push(v)
		}
	}
	return b, nil
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Columns() int {
	return len(b.stacks)
}

func (b *Board) CurrentPlayer() int {
	return b.current
}

func (b *Board) IsCurrentPlayer(player int) bool {
	return player == b.current
}

// LastMove returns the position of the most recently placed piece, if any.
func (b *Board) LastMove() (Position, bool) {
	return b.last, b.hasLast
}

// Height returns the number of pieces in a column.
func (b *Board) Height(column int) int {
	return b.stacks[column].height
}

// IsValidMove reports whether a piece can be dropped in the column.
func (b *Board) IsValidMove(column int) bool {
	return column >= 0 && column < len(b.stacks) && b.stacks[column].height < b.rows
}

// LegalMoves returns the columns with remaining capacity in ascending order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, len(b.stacks))
	for c := range b.stacks {
		if b.stacks[c].height < b.rows {
			moves = append(moves, c)
		}
	}
	return moves
}

func (b *Board) checkMove(player, column int) error {
	switch {
	case player != b.current:
		return &InvalidMoveError{Player: player, Column: column, Reason: WrongPlayer}
	case column < 0 || column >= len(b.stacks):
		return &InvalidMoveError{Player: player, Column: column, Reason: ColumnOutOfRange}
	case b.stacks[column].height >= b.rows:
		return &InvalidMoveError{Player: player, Column: column, Reason: ColumnFull}
	}
	return nil
}

// ApplyMove drops the player's piece in the column and passes the turn.
func (b *Board) ApplyMove(player, column int) error {
	if err := b.checkMove(player, column); err != nil {
		return err
	}
	b.last = Position{Row: b.stacks[column].height, Column: column}
	b.hasLast = true
	b.stacks[column] = b.stacks[column].push(player)
	b.current = Opponent(player)
	return nil
}

// GetNextState returns the key the board would have after the move, leaving
// the board untouched.
func (b *Board) GetNextState(player, column int) (StateKey, error) {
	if err := b.checkMove(player, column); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidStateLookup, err)
	}
	return b.encode(column, player), nil
}

// Clone returns a deep copy sharing no storage with b.
func (b *Board) Clone() *Board {
	clone := *b
	clone.stacks = make([]stack, len(b.stacks))
	copy(clone.stacks, b.stacks)
	return &clone
}

// GetWinner scans columns, rows, diagonals then anti-diagonals and reports the
// owner of the first four-in-a-row found.
func (b *Board) GetWinner() (int, bool) {
	cols := len(b.stacks)
	for c := 0; c < cols; c++ {
		if winner, ok := b.runWinner(0, c, 1, 0); ok {
			return winner, true
		}
	}
	for r := 0; r < b.rows; r++ {
		if winner, ok := b.runWinner(r, 0, 0, 1); ok {
			return winner, true
		}
	}
	for i := -(b.rows - 1); i < cols; i++ {
		row, col := b.diagonalStart(i)
		if winner, ok := b.runWinner(row, col, 1, 1); ok {
			return winner, true
		}
	}
	for i := -(b.rows - 1); i < cols; i++ {
		row, col := b.antiDiagonalStart(i)
		if winner, ok := b.runWinner(row, col, -1, 1); ok {
			return winner, true
		}
	}
	return Empty, false
}

// IsDraw reports a full board without a winner.
func (b *Board) IsDraw() bool {
	if _, ok := b.GetWinner(); ok {
		return false
	}
	return len(b.LegalMoves()) == 0
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := b.rows - 1; r >= 0; r-- {
		for c := range b.stacks {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch b.stacks[c].at(r) {
			case Player1:
				sb.WriteByte('x')
			case Player2:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
