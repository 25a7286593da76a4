package engine

import (
	"errors"
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Engine runs one game between two move sources on a local board.
type Engine struct {
	board     *game.Board
	sources   [2]player.MoveSource // Indexed by player ID - 1
	presenter Presenter
}

// LocalEngine plays on board, which it mutates. A nil presenter draws nothing.
func LocalEngine(board *game.Board, player1, player2 player.MoveSource, presenter Presenter) *Engine {
	if player1 == nil || player2 == nil {
		panic("need a move source for both players")
	}
	if presenter == nil {
		presenter = silentPresenter{}
	}
	return &Engine{
		board:     board,
		sources:   [2]player.MoveSource{player1, player2},
		presenter: presenter,
	}
}

// Run executes the entire game loop until a winner is found or the board is full.
func (e *Engine) Run() (Result, error) {
	result := Result{ID: uuid.NewString(), Start: time.Now()}
	logger := log.With().Str("game", result.ID).Logger()

	logger.Info().Msgf("player %d (%s) is starting", e.board.CurrentPlayer(), e.source(e.board.CurrentPlayer()))
	e.presenter.Present(e.board)

	for step := 1; ; step++ {
		if winner, ok := e.board.GetWinner(); ok {
			result.Winner = winner
			break
		}
		legalMoves := e.board.LegalMoves()
		if len(legalMoves) == 0 {
			result.Draw = true
			break
		}

		current := e.board.CurrentPlayer()
		column, err := e.play(current, legalMoves)
		if err != nil {
			result.End = time.Now()
			return result, err
		}
		result.Moves = append(result.Moves, column)
		if measured, ok := e.source(current).(player.Measured); ok {
			result.MoveMetrics = append(result.MoveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       current,
				Column:       column,
				SearchMetric: measured.LastMetric(),
			})
		}

		logger.Debug().Uint64("state", e.board.StateKey().Hash()).Msgf("step %d: player %d played column %d", step, current, column)
		e.presenter.Present(e.board)
	}
	result.End = time.Now()

	if result.Draw {
		logger.Info().Msgf("game drawn after %d moves", len(result.Moves))
	} else {
		logger.Info().Msgf("player %d (%s) won after %d moves", result.Winner, e.source(result.Winner), len(result.Moves))
	}
	return result, nil
}

// play asks the current player's source for a move until the board accepts one.
func (e *Engine) play(current int, legalMoves []int) (int, error) {
	source := e.source(current)
	for attempt := 1; attempt <= meta.MAX_RETRIES; attempt++ {
		column, err := source.GetMove(e.board, legalMoves)
		if err != nil {
			return -1, fmt.Errorf("player %d (%s) failed to move: %w", current, source, err)
		}

		err = e.board.ApplyMove(current, column)
		var invalid *game.InvalidMoveError
		if errors.As(err, &invalid) {
			log.Warn().Str("reason", invalid.Reason.String()).Msgf("player %d (%s) rejected in column %d, retrying", current, source, column)
			continue
		}
		if err != nil {
			return -1, err
		}
		return column, nil
	}
	return -1, fmt.Errorf("player %d (%s): %w after %d attempts", current, source, ErrTooManyRetries, meta.MAX_RETRIES)
}

func (e *Engine) source(id int) player.MoveSource {
	return e.sources[id-1]
}
