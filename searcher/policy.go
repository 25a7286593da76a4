package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// score ranks a candidate, prioritizing ones never visited
func (u uct) score(stats *Stats) float64 {
	if stats.Visits == 0 {
		return math.Inf(1)
	}
	return u.evaluate(float64(stats.Wins), float64(stats.Visits))
}

// selectUCT returns the index of the first candidate with the highest UCT score
func selectUCT(candidates []*Stats) int {
	total := 0
	for _, stats := range candidates {
		total += stats.Visits
	}
	if total == 0 {
		return 0
	}

	policy := newUCT(CSquared, float64(total))
	best, bestScore := 0, math.Inf(-1)
	for i, stats := range candidates {
		score := policy.score(stats)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
