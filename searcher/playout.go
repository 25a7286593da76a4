package searcher

import (
	"fmt"

	"connect4/experiments/metrics"
)

// playouts runs simulations into a private table; one per goroutine.
type playouts[M, K comparable, S State[M, K, S]] struct {
	table   Table[K]
	cutoff  int
	rollout RolloutPolicy
	metrics metrics.Collector
}

func newPlayouts[M, K comparable, S State[M, K, S]](cutoff int, rollout RolloutPolicy, collector metrics.Collector) *playouts[M, K, S] {
	return &playouts[M, K, S]{
		table:   Table[K]{},
		cutoff:  cutoff,
		rollout: rollout,
		metrics: collector,
	}
}

// run plays state out to a win, a full board or the cutoff, then backs up the
// result. It expands at most one new position per call and mutates state.
func (p *playouts[M, K, S]) run(state S) {
	visited := map[Key[K]]struct{}{}
	expanding := true
	depth := 0

	winner, won := state.GetWinner()
	moves := state.LegalMoves()
	keys := make([]K, 0, len(moves))
	stats := make([]*Stats, 0, len(moves))
	for !won && len(moves) > 0 && depth < p.cutoff {
		player := state.CurrentPlayer()
		keys = nextStates(state, player, moves, keys[:0])

		// Select by UCT only when every candidate has been expanded
		var i int
		var known bool
		stats, known = p.lookup(player, keys, stats[:0])
		if known {
			i = selectUCT(stats)
		} else {
			i = p.rollout(len(moves))
			if i < 0 || i >= len(moves) {
				panic(fmt.Errorf("%w: rollout picked index %d of %d moves", ErrInvariantViolation, i, len(moves)))
			}
		}

		if err := state.ApplyMove(player, moves[i]); err != nil {
			panic(fmt.Errorf("%w: legal move %v rejected: %w", ErrInvariantViolation, moves[i], err))
		}
		key := Key[K]{Player: player, State: keys[i]}
		visited[key] = struct{}{}
		if expanding {
			if _, ok := p.table[key]; !ok {
				p.table[key] = &Stats{}
				expanding = false
			}
		}

		depth++
		winner, won = state.GetWinner()
		moves = state.LegalMoves()
	}

	// A cutoff with no winner is scored as a draw
	for key := range visited {
		p.table.record(key, winner, won)
	}
	p.metrics.AddPlayout(won || len(moves) == 0)
}

// lookup appends the stats of each candidate key, reporting whether all were found.
func (p *playouts[M, K, S]) lookup(player int, keys []K, stats []*Stats) ([]*Stats, bool) {
	for _, key := range keys {
		s, ok := p.table[Key[K]{Player: player, State: key}]
		if !ok {
			return stats, false
		}
		stats = append(stats, s)
	}
	return stats, true
}

// nextStates appends the key reached by each move to keys.
func nextStates[M, K comparable, S State[M, K, S]](state S, player int, moves []M, keys []K) []K {
	for _, move := range moves {
		key, err := state.GetNextState(player, move)
		if err != nil {
			panic(fmt.Errorf("%w: legal move %v has no next state: %w", ErrInvariantViolation, move, err))
		}
		for j, seen := range keys {
			if seen == key {
				panic(fmt.Errorf("%w: moves %v and %v lead to the same state", ErrInvariantViolation, moves[j], move))
			}
		}
		keys = append(keys, key)
	}
	return keys
}
