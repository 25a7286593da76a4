package engine

import (
	"fmt"
	"io"
	"strings"

	"connect4/game"
)

type Presenter interface {
	Present(board *game.Board)
}

// TextPresenter draws the board top row first, with column numbers above
// and the row index left of each row.
type TextPresenter struct {
	out io.Writer
}

func NewTextPresenter(out io.Writer) *TextPresenter {
	return &TextPresenter{out: out}
}

func (p *TextPresenter) Present(board *game.Board) {
	var sb strings.Builder

	header := make([]string, board.Columns())
	for c := range header {
		header[c] = fmt.Sprint(c)
	}
	sb.WriteString("    " + strings.Join(header, "   ") + "\n")

	for r := board.Rows() - 1; r >= 0; r-- {
		cells := make([]string, board.Columns())
		for c, v := range board.Row(r) {
			cells[c] = symbol(v)
		}
		fmt.Fprintf(&sb, "%d   %s\n", r, strings.Join(cells, "   "))
	}
	fmt.Fprint(p.out, sb.String())
}

func symbol(v int) string {
	switch v {
	case game.Player1:
		return "x"
	case game.Player2:
		return "o"
	case game.Empty:
		return "."
	default:
		panic(fmt.Sprintf("unknown player %d", v))
	}
}

type silentPresenter struct{}

func (silentPresenter) Present(board *game.Board) {}
