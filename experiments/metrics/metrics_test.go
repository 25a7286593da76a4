package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting playouts from concurrent workers", func(t *testing.T) {
		c := NewCollector()
		c.Start(4)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddPlayout(j%5 == 0)
				}
			}()
		}
		wg.Wait()
		metric := c.Complete(42)

		require.Equal(t, 4, metric.Goroutines)
		require.Equal(t, 100, metric.Playouts)
		require.Equal(t, 20, metric.FullPlayouts)
		require.Equal(t, 42, metric.TableSize)
	})

	t.Run("resetting on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddPlayout(true)
		c.Start(1)

		require.Zero(t, c.Complete(0).Playouts)
	})

	t.Run("dummy collector", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1)
		c.AddPlayout(true)

		require.Equal(t, SearchMetric{}, c.Complete(3))
	})
}

func TestNewWriter(t *testing.T) {
	outDir := t.TempDir()

	w1, err := NewWriter(outDir, "same")
	require.NoError(t, err)
	w2, err := NewWriter(outDir, "same")
	require.NoError(t, err)

	require.NotEqual(t, w1.Dir(), w2.Dir(), "Writers created in the same instant should not share a directory")
	require.Equal(t, filepath.Join(outDir, "same"), filepath.Dir(w1.Dir()))
	require.DirExists(t, w2.Dir())
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "test")
	require.NoError(t, err)

	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		Seq:         1,
		Agent1:      3,
		Agent2:      4,
		WinnerAgent: 4,
		GameMetric: GameMetric{
			ID:             "g",
			StartingPlayer: 1,
			Winner:         2,
			StartTime:      start,
			EndTime:        start.Add(time.Second),
			Duration:       time.Second,
			TotalMoves:     12,
		},
	}}))

	f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.Equal(t, "seq", rows[0][0])
	require.Equal(t, []string{"1", "g", "3", "4", "1", "2", "4", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "12"}, rows[1])
}
