package searcher

import "errors"

// ErrInvariantViolation is the panic payload for broken search assumptions.
// It signals a bug in the search or in the State implementation, never bad user input.
var ErrInvariantViolation = errors.New("search invariant violated")

// State is a two-player, perfect-information game position the search can play out.
// Clone must return an independent copy: playouts mutate their clone with ApplyMove.
type State[M, K comparable, S any] interface {
	CurrentPlayer() int
	LegalMoves() []M
	ApplyMove(player int, move M) error
	// GetNextState returns the key of the position reached if player made move,
	// leaving the receiver unchanged. Distinct moves must yield distinct keys.
	GetNextState(player int, move M) (K, error)
	GetWinner() (winner int, ok bool)
	Clone() S
}

// RolloutPolicy picks the index of the move to play among n candidates.
type RolloutPolicy func(n int) int

// Searcher picks a move for player among legalMoves in state.
type Searcher[M, K comparable, S State[M, K, S]] interface {
	GetMove(state S, legalMoves []M, player int) M
}
