package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Playouts     int
	FullPlayouts int // Playouts that reached a win or a full board before the cutoff
	TableSize    int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Column int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int)
	AddPlayout(full bool)
	Complete(tableSize int) SearchMetric
}

type collector struct {
	goroutines   int
	startTime    time.Time
	playouts     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.playouts.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddPlayout(full bool) {
	m.playouts.Add(1)
	if full {
		m.fullPlayouts.Add(1)
	}
}

func (m *collector) Complete(tableSize int) SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Playouts:     int(m.playouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TableSize:    tableSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)                {}
func (m *dummyCollector) AddPlayout(full bool)                {}
func (m *dummyCollector) Complete(tableSize int) SearchMetric { return SearchMetric{} }
