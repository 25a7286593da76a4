package player

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

var _ searcher.Searcher[int, game.StateKey, *game.Board] = (*searcher.MCTS[int, game.StateKey, *game.Board])(nil)

// MCTS searches for the move of whichever player is to move on the board.
type MCTS struct {
	search *searcher.MCTS[int, game.StateKey, *game.Board]
	last   metrics.SearchMetric
}

func NewMCTS(options ...searcher.Option) *MCTS {
	return &MCTS{search: searcher.NewMCTS[int, game.StateKey, *game.Board](options...)}
}

func (p *MCTS) String() string {
	return "MCTS"
}

func (p *MCTS) GetMove(board *game.Board, legalMoves []int) (int, error) {
	move, metric := p.search.FindMove(board, legalMoves, board.CurrentPlayer())
	p.last = metric
	return move, nil
}

func (p *MCTS) LastMetric() metrics.SearchMetric {
	return p.last
}
