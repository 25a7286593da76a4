package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"connect4/game"
	"connect4/meta"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Board      Board      `yaml:"board"`
	Search     Search     `yaml:"search"`
	Players    Players    `yaml:"players"`
	Log        Log        `yaml:"log"`
	Experiment Experiment `yaml:"experiment"`
}

type Board struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
}

type Search struct {
	TimeBudget    time.Duration `yaml:"time_budget"`
	MaxDepth      int           `yaml:"max_depth"`
	LowConfidence float64       `yaml:"low_confidence"`
	Goroutines    int           `yaml:"goroutines"`
	Episodes      int           `yaml:"episodes"` // Overrides the time budget when positive
	Seed          uint64        `yaml:"seed"`     // 0 draws a fresh seed per search
}

type Players struct {
	P1 string `yaml:"p1"`
	P2 string `yaml:"p2"`
}

type Log struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type Experiment struct {
	Games     int    `yaml:"games"` // Per match up
	OutputDir string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		Board: Board{Rows: meta.ROWS, Columns: meta.COLUMNS},
		Search: Search{
			TimeBudget:    meta.TIME_BUDGET,
			MaxDepth:      meta.MAX_DEPTH,
			LowConfidence: meta.LOW_CONFIDENCE,
			Goroutines:    meta.GO_ROUTINES,
		},
		Players:    Players{P1: "human", P2: "mcts"},
		Log:        Log{Level: "info", Pretty: true},
		Experiment: Experiment{Games: 10, OutputDir: "experiments"},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default value; unknown fields are rejected.
func Load(path string) (Config, error) {
	c := Default()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Board.Rows < 1 || c.Board.Rows > game.MaxRows {
		errs = append(errs, fmt.Errorf("board.rows %d not in [1, %d]", c.Board.Rows, game.MaxRows))
	}
	if c.Board.Columns < 1 {
		errs = append(errs, fmt.Errorf("board.columns %d must be positive", c.Board.Columns))
	}
	if c.Search.TimeBudget <= 0 && c.Search.Episodes <= 0 {
		errs = append(errs, errors.New("search needs a positive time_budget or episodes"))
	}
	if c.Search.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("search.max_depth %d must be positive", c.Search.MaxDepth))
	}
	if c.Search.LowConfidence < 0 || c.Search.LowConfidence > 1 {
		errs = append(errs, fmt.Errorf("search.low_confidence %v not in [0, 1]", c.Search.LowConfidence))
	}
	if c.Search.Goroutines < 1 {
		errs = append(errs, fmt.Errorf("search.goroutines %d must be positive", c.Search.Goroutines))
	}
	for name, kind := range map[string]string{"players.p1": c.Players.P1, "players.p2": c.Players.P2} {
		switch strings.ToLower(kind) {
		case "h", "human", "m", "mcts":
		default:
			errs = append(errs, fmt.Errorf("%s %q is not one of h, human, m, mcts", name, kind))
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Experiment.Games < 0 {
		errs = append(errs, fmt.Errorf("experiment.games %d must not be negative", c.Experiment.Games))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) BoardOptions() []game.Option {
	return []game.Option{game.WithSize(c.Board.Rows, c.Board.Columns)}
}

func (c Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDuration(c.Search.TimeBudget),
		searcher.WithCutoff(c.Search.MaxDepth),
		searcher.WithLowConfidence(c.Search.LowConfidence),
		searcher.WithGoroutines(c.Search.Goroutines),
	}
	if c.Search.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(c.Search.Episodes))
	}
	if c.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Search.Seed))
	}
	return options
}
