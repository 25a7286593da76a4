package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	agent1 := metrics.AgentConfig{ID: 1, Goroutines: 1, Episodes: 5, LowConfidence: 0.2}
	agent2 := metrics.AgentConfig{ID: 2, Goroutines: 2, Episodes: 5, LowConfidence: 0.2}

	dir, err := Run("smoke", []metrics.AgentConfig{agent1, agent2}, []MatchUp{{agent1, agent2}}, 2, t.TempDir())
	require.NoError(t, err)

	t.Run("writing agent configs", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "1", "0s", "5", "0", "0.2", "0"}, rows[1])
	})

	t.Run("alternating the starting agent", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "2"}, rows[1][2:4])
		require.Equal(t, []string{"2", "1"}, rows[2][2:4])
		require.NotEqual(t, rows[1][1], rows[2][1], "Games should have distinct ids")
	})

	t.Run("writing a record per searched move", func(t *testing.T) {
		rows := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.GreaterOrEqual(t, len(rows), 1+2*7, "Both games take at least seven moves")
		require.Equal(t, "game", rows[0][0])
	})
}

func TestRunOnCustomBoard(t *testing.T) {
	agent := metrics.AgentConfig{ID: 1, Goroutines: 1, Episodes: 5, LowConfidence: 0.2, Seed: 1}

	dir, err := Run("small", []metrics.AgentConfig{agent}, []MatchUp{{agent, agent}}, 1, t.TempDir(), game.WithSize(4, 4))
	require.NoError(t, err)

	rows := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.LessOrEqual(t, len(rows), 1+16, "A 4x4 board holds at most 16 moves")
	for _, row := range rows[1:] {
		column, err := strconv.Atoi(row[3])
		require.NoError(t, err)
		require.Less(t, column, 4)
	}
}

func TestByName(t *testing.T) {
	t.Run("presets include a baseline", func(t *testing.T) {
		for _, name := range []string{"parallelization", "cutoff", "low_confidence"} {
			configs, matchUps, err := ByName(name, DefaultAgent(time.Millisecond))
			require.NoError(t, err)
			require.Len(t, configs, len(matchUps)+1)
			for _, matchUp := range matchUps {
				require.Equal(t, 0, matchUp[0].ID, "Every match up should include the baseline")
				require.Equal(t, 0.2, matchUp[0].LowConfidence)
			}
		}
	})

	t.Run("deriving every agent from the base", func(t *testing.T) {
		base := DefaultAgent(time.Second)
		base.Episodes = 7
		base.Seed = 3

		configs, _, err := ByName("cutoff", base)
		require.NoError(t, err)

		for _, config := range configs {
			require.Equal(t, 7, config.Episodes)
			require.Equal(t, uint64(3), config.Seed)
			require.Equal(t, time.Second, config.Duration)
		}
		require.Equal(t, 100, configs[0].Cutoff, "Baseline should keep the base cutoff")
	})

	t.Run("unknown experiment", func(t *testing.T) {
		_, _, err := ByName("speedup", DefaultAgent(time.Millisecond))
		require.ErrorContains(t, err, "speedup")
	})
}
