// meta/meta.go
package meta

import "time"

// ROWS defines the default board height.
const ROWS = 6

// COLUMNS defines the default board width.
const COLUMNS = 7

// TIME_BUDGET defines the default wall-clock budget per MCTS decision.
const TIME_BUDGET = 30 * time.Second

// MAX_DEPTH defines the default playout depth cutoff.
const MAX_DEPTH = 100

// LOW_CONFIDENCE defines the win rate under which draws are counted in favour of a move.
const LOW_CONFIDENCE = 0.2

// GO_ROUTINES defines the default number of playout workers.
const GO_ROUTINES = 1

// MAX_RETRIES defines how many rejected moves a source may submit in a row.
const MAX_RETRIES = 10
