package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connect4/game"
	"connect4/utils"

	"github.com/rs/zerolog/log"
)

var ErrInputClosed = errors.New("input closed")

// Human reads columns typed on an input stream, one per line. Humans reading
// the same stream must share one scanner, since a scanner buffers ahead.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewHuman(in *bufio.Scanner, out io.Writer) *Human {
	return &Human{in: in, out: out}
}

func (h *Human) String() string {
	return "Human"
}

// GetMove prompts until a legal column is entered.
func (h *Human) GetMove(board *game.Board, legalMoves []int) (int, error) {
	for {
		fmt.Fprintf(h.out, "player %d, choose a column %v: ", board.CurrentPlayer(), legalMoves)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return -1, fmt.Errorf("failed to read move: %w", err)
			}
			return -1, ErrInputClosed
		}

		text := strings.TrimSpace(h.in.Text())
		column, err := strconv.Atoi(text)
		if err != nil {
			log.Debug().Msgf("rejected malformed input %q", text)
			fmt.Fprintf(h.out, "%q is not a column number\n", text)
			continue
		}
		if !utils.Contains(legalMoves, column) {
			fmt.Fprintf(h.out, "column %d cannot be played\n", column)
			continue
		}
		return column, nil
	}
}
