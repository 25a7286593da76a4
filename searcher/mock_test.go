package searcher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type edge struct {
	move string
	next string
}

// treeState is a game given as an explicit graph of named states.
type treeState struct {
	state   string
	player  int
	edges   map[string][]edge
	winners map[string]int
	played  []string
}

func (s *treeState) CurrentPlayer() int {
	return s.player
}

func (s *treeState) LegalMoves() []string {
	moves := []string{}
	for _, e := range s.edges[s.state] {
		moves = append(moves, e.move)
	}
	return moves
}

func (s *treeState) next(move string) (string, error) {
	for _, e := range s.edges[s.state] {
		if e.move == move {
			return e.next, nil
		}
	}
	return "", fmt.Errorf("no move %s from state %s", move, s.state)
}

func (s *treeState) ApplyMove(player int, move string) error {
	if player != s.player {
		return fmt.Errorf("player %d moved out of turn", player)
	}
	next, err := s.next(move)
	if err != nil {
		return err
	}
	s.state = next
	s.player = 3 - s.player
	s.played = append(s.played, move)
	return nil
}

func (s *treeState) GetNextState(player int, move string) (string, error) {
	return s.next(move)
}

func (s *treeState) GetWinner() (int, bool) {
	winner, ok := s.winners[s.state]
	return winner, ok
}

func (s *treeState) Clone() *treeState {
	clone := *s
	clone.played = append([]string{}, s.played...)
	return &clone
}

// newThreeMoveGame has player 2 choose among m1, m2 and m3, where only m2 wins.
func newThreeMoveGame() *treeState {
	return &treeState{
		state:  "s1",
		player: 2,
		edges: map[string][]edge{
			"s1": {{"m1", "s2"}, {"m2", "s3"}, {"m3", "s4"}},
		},
		winners: map[string]int{"s2": 1, "s3": 2, "s4": 1},
	}
}

// newDrawingGame has player 1 choose between two losses and a draw.
func newDrawingGame() *treeState {
	return &treeState{
		state:  "r",
		player: 1,
		edges: map[string][]edge{
			"r": {{"a", "la"}, {"b", "d"}, {"c", "lc"}},
		},
		winners: map[string]int{"la": 2, "lc": 2},
	}
}

// newTwoPlyGame wins for player 1 on the second move only.
func newTwoPlyGame() *treeState {
	return &treeState{
		state:  "r",
		player: 1,
		edges: map[string][]edge{
			"r": {{"x", "m"}},
			"m": {{"y", "w"}},
		},
		winners: map[string]int{"w": 1},
	}
}

// cycling returns a rollout policy that walks the candidates in order across calls.
func cycling() (RolloutPolicy, *int) {
	count := 0
	return func(n int) int {
		i := count % n
		count++
		return i
	}, &count
}

func requireInvariantPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "Should panic")
		err, ok := r.(error)
		require.True(t, ok, "Panic value should be an error")
		require.True(t, errors.Is(err, ErrInvariantViolation), "Panic should be an invariant violation, got %v", err)
	}()
	f()
}
