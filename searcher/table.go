package searcher

import "fmt"

// Key identifies a position by the player who moved into it.
type Key[K comparable] struct {
	Player int
	State  K
}

// Stats counts playout outcomes from the perspective of Key.Player.
type Stats struct {
	Visits int
	Wins   int
	Draws  int
	Losses int
}

// WinRate is 0 for a position that was never visited.
func (s Stats) WinRate() float64 {
	if s.Visits == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Visits)
}

// NonLossRate is the share of playouts that were won or drawn, 0 if never visited.
func (s Stats) NonLossRate() float64 {
	if s.Visits == 0 {
		return 0
	}
	return float64(s.Wins+s.Draws) / float64(s.Visits)
}

func (s *Stats) add(other Stats) {
	s.Visits += other.Visits
	s.Wins += other.Wins
	s.Draws += other.Draws
	s.Losses += other.Losses
	s.check()
}

func (s *Stats) check() {
	if s.Wins < 0 || s.Draws < 0 || s.Losses < 0 || s.Wins+s.Draws+s.Losses != s.Visits {
		panic(fmt.Errorf("%w: inconsistent stats %+v", ErrInvariantViolation, *s))
	}
}

// Table accumulates Stats for every expanded position of a single search.
type Table[K comparable] map[Key[K]]*Stats

func (t Table[K]) Lookup(player int, state K) (Stats, bool) {
	stats, ok := t[Key[K]{Player: player, State: state}]
	if !ok {
		return Stats{}, false
	}
	return *stats, true
}

// Merge adds the counters of other into t.
func (t Table[K]) Merge(other Table[K]) {
	for key, stats := range other {
		if mine, ok := t[key]; ok {
			mine.add(*stats)
			continue
		}
		copied := *stats
		copied.check()
		t[key] = &copied
	}
}

func (t Table[K]) record(key Key[K], winner int, won bool) {
	stats, ok := t[key]
	if !ok {
		return
	}
	stats.Visits++
	switch {
	case !won:
		stats.Draws++
	case winner == key.Player:
		stats.Wins++
	default:
		stats.Losses++
	}
}
