package searcher

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"connect4/experiments/metrics"
	"connect4/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(o *options)

type options struct {
	goroutines    int
	duration      time.Duration
	episodes      int
	cutoff        int
	lowConfidence float64
	seed          uint64
	rollout       RolloutPolicy
	collect       bool
}

func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		if duration > 0 {
			o.duration = duration
		}
	}
}

// WithEpisodes runs a fixed number of playouts per move instead of a time budget.
func WithEpisodes(episodes int) Option {
	return func(o *options) {
		if episodes > 0 {
			o.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.cutoff = depth
		}
	}
}

// WithLowConfidence sets the win rate under which the move losing least often is preferred.
// A threshold of 0 disables the fallback.
func WithLowConfidence(threshold float64) Option {
	return func(o *options) {
		if threshold >= 0 {
			o.lowConfidence = threshold
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(o *options) {
		if goroutines > 0 {
			o.goroutines = goroutines
		}
	}
}

// WithSeed makes rollouts reproducible. Without it every search draws fresh entropy.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithRolloutPolicy replaces the uniform random rollout. The policy is shared
// by all goroutines and must be safe for concurrent use when goroutines > 1.
func WithRolloutPolicy(rollout RolloutPolicy) Option {
	return func(o *options) {
		if rollout != nil {
			o.rollout = rollout
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.collect = true
	}
}

// MCTS picks moves with Monte Carlo playouts guided by UCT.
// Statistics live only for the duration of one GetMove call.
// An MCTS is not safe for concurrent use.
type MCTS[M, K comparable, S State[M, K, S]] struct {
	options
	seeds   *rand.Rand
	metrics metrics.Collector
}

func NewMCTS[M, K comparable, S State[M, K, S]](opts ...Option) *MCTS[M, K, S] {
	m := &MCTS[M, K, S]{ // Default values
		options: options{
			goroutines:    meta.GO_ROUTINES,
			duration:      meta.TIME_BUDGET,
			cutoff:        meta.MAX_DEPTH,
			lowConfidence: meta.LOW_CONFIDENCE,
		},
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range opts {
		option(&m.options)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if m.seed != 0 {
		m.seeds = rand.New(rand.NewSource(m.seed))
	}
	if m.collect {
		m.metrics = metrics.NewCollector()
	}
	return m
}

func (m *MCTS[M, K, S]) GetMove(state S, legalMoves []M, player int) M {
	move, _ := m.FindMove(state, legalMoves, player)
	return move
}

// FindMove is GetMove that also reports search metrics, zero unless WithMetrics is set.
func (m *MCTS[M, K, S]) FindMove(state S, legalMoves []M, player int) (M, metrics.SearchMetric) {
	if len(legalMoves) == 0 {
		panic("no legal moves to choose from")
	}
	if len(legalMoves) == 1 {
		return legalMoves[0], metrics.SearchMetric{}
	}

	m.metrics.Start(m.goroutines)
	table := m.search(state)
	metric := m.metrics.Complete(len(table))

	move := m.choose(state, legalMoves, player, table)
	log.Debug().Msgf("player %d picked move %v after %d playouts with %d positions", player, move, metric.Playouts, metric.TableSize)
	return move, metric
}

// search runs playouts on clones of state in every goroutine and merges their tables.
func (m *MCTS[M, K, S]) search(state S) Table[K] {
	workers := make([]*playouts[M, K, S], m.goroutines)
	for i := range workers {
		workers[i] = newPlayouts[M, K, S](m.cutoff, m.rolloutPolicy(), m.metrics)
	}

	start := time.Now()
	var remaining atomic.Int64
	remaining.Store(int64(m.episodes))

	var g errgroup.Group
	for i, worker := range workers {
		i, worker := i, worker // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() (err error) {
			// Surface panics from workers on the calling goroutine
			defer func() {
				if r := recover(); r != nil {
					if e, ok := r.(error); ok {
						err = fmt.Errorf("playout worker %d: %w", i, e)
					} else {
						err = fmt.Errorf("playout worker %d: %v", i, r)
					}
				}
			}()

			if m.episodes > 0 {
				iterate(worker, state, &remaining)
			} else {
				countdown(worker, state, start, m.duration)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	table := workers[0].table
	for _, worker := range workers[1:] {
		table.Merge(worker.table)
	}
	return table
}

func iterate[M, K comparable, S State[M, K, S]](p *playouts[M, K, S], state S, remaining *atomic.Int64) {
	for remaining.Add(-1) >= 0 {
		p.run(state.Clone())
	}
}

// countdown checks the budget once per completed playout, so it always runs at least one.
func countdown[M, K comparable, S State[M, K, S]](p *playouts[M, K, S], state S, start time.Time, duration time.Duration) {
	for {
		p.run(state.Clone())
		if time.Since(start) >= duration {
			return
		}
	}
}

func (m *MCTS[M, K, S]) rolloutPolicy() RolloutPolicy {
	if m.rollout != nil {
		return m.rollout
	}
	var seed uint64
	if m.seeds != nil {
		seed = m.seeds.Uint64()
	} else {
		seed = frand.Uint64n(math.MaxUint64)
	}
	rng := rand.New(rand.NewSource(seed))
	return rng.Intn
}

// choose picks the move with the best win rate, falling back to the move that
// loses least often when even the best win rate is below the low-confidence threshold.
func (m *MCTS[M, K, S]) choose(state S, legalMoves []M, player int, table Table[K]) M {
	moves := make([]M, 0, len(legalMoves))
	stats := make([]Stats, 0, len(legalMoves))
	for _, move := range legalMoves {
		key, err := state.GetNextState(player, move)
		if err != nil {
			log.Warn().Err(err).Msgf("skipping move %v for player %d", move, player)
			continue
		}
		s, _ := table.Lookup(player, key)
		moves = append(moves, move)
		stats = append(stats, s)
	}
	if len(moves) == 0 {
		panic(fmt.Errorf("%w: no legal move has a next state for player %d", ErrInvariantViolation, player))
	}

	best := argmax(stats, Stats.WinRate)
	if rate := stats[best].WinRate(); rate < m.lowConfidence {
		safest := argmax(stats, Stats.NonLossRate)
		if safest != best {
			log.Debug().Msgf("best win rate %.3f below %.3f, playing %v instead of %v", rate, m.lowConfidence, moves[safest], moves[best])
			best = safest
		}
	}
	return moves[best]
}

// argmax returns the first index with the highest value
func argmax(stats []Stats, value func(Stats) float64) int {
	best, bestValue := 0, math.Inf(-1)
	for i, s := range stats {
		if v := value(s); v > bestValue {
			best, bestValue = i, v
		}
	}
	return best
}
