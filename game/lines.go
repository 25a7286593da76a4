package game

import "fmt"

// Value returns the cell at (row, column), row 0 being the bottom.
// It panics when the cell is off the board.
func (b *Board) Value(row, column int) int {
	b.mustRow(row)
	b.mustColumn(column)
	return b.stacks[column].at(row)
}

// Row returns the cells of a row from left to right. It panics on an out of range row.
func (b *Board) Row(row int) []int {
	b.mustRow(row)
	return b.line(row, 0, 0, 1)
}

// Column returns the cells of a column from bottom to top, padded with Empty.
// It panics on an out of range column.
func (b *Board) Column(column int) []int {
	b.mustColumn(column)
	return b.line(0, column, 1, 0)
}

func (b *Board) mustRow(row int) {
	if row < 0 || row >= b.rows {
		panic(fmt.Sprintf("row %d out of range [0, %d)", row, b.rows))
	}
}

func (b *Board) mustColumn(column int) {
	if column < 0 || column >= len(b.stacks) {
		panic(fmt.Sprintf("column %d out of range [0, %d)", column, len(b.stacks)))
	}
}

// Diagonal returns the cells of a bottom-left to top-right diagonal. Index 0
// starts at the bottom-left corner, negative indices start up the first
// column and positive ones along the bottom row.
func (b *Board) Diagonal(index int) ([]int, error) {
	if err := b.checkLineIndex(index); err != nil {
		return nil, err
	}
	row, col := b.diagonalStart(index)
	return b.line(row, col, 1, 1), nil
}

// AntiDiagonal returns the cells of a top-left to bottom-right diagonal,
// indexed like Diagonal but mirrored from the top row.
func (b *Board) AntiDiagonal(index int) ([]int, error) {
	if err := b.checkLineIndex(index); err != nil {
		return nil, err
	}
	row, col := b.antiDiagonalStart(index)
	return b.line(row, col, -1, 1), nil
}

func (b *Board) checkLineIndex(index int) error {
	if index < -(b.rows-1) || index > len(b.stacks)-1 {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLineOutOfRange, index, -(b.rows - 1), len(b.stacks)-1)
	}
	return nil
}

func (b *Board) diagonalStart(index int) (row, col int) {
	if index >= 0 {
		return 0, index
	}
	return -index, 0
}

func (b *Board) antiDiagonalStart(index int) (row, col int) {
	if index >= 0 {
		return b.rows - 1, index
	}
	return b.rows - 1 + index, 0
}

func (b *Board) inside(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < len(b.stacks)
}

func (b *Board) line(row, col, dRow, dCol int) []int {
	var cells []int
	for ; b.inside(row, col); row, col = row+dRow, col+dCol {
		cells = append(cells, b.stacks[col].at(row))
	}
	return cells
}

// runWinner walks a line like line does without materialising it.
func (b *Board) runWinner(row, col, dRow, dCol int) (int, bool) {
	var r run
	for ; b.inside(row, col); row, col = row+dRow, col+dCol {
		if r.add(b.stacks[col].at(row)) {
			return r.player, true
		}
	}
	return Empty, false
}

// WinnerInLine returns the first player holding four consecutive cells of the line.
func WinnerInLine(line []int) (int, bool) {
	var r run
	for _, v := range line {
		if r.add(v) {
			return r.player, true
		}
	}
	return Empty, false
}

// run tracks the current streak of equal cells along a line.
type run struct {
	player int
	length int
}

func (r *run) add(v int) bool {
	if v != Empty && v == r.player {
		r.length++
	} else {
		r.player, r.length = v, 1
	}
	return r.player != Empty && r.length >= InARow
}
