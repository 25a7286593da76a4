package experiments

import (
	"fmt"
	"time"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/player"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
)

// MatchUp pairs two agents; they alternate as the starting player across games.
type MatchUp [2]metrics.AgentConfig

// DefaultAgent is the baseline agent presets start from.
func DefaultAgent(budget time.Duration) metrics.AgentConfig {
	return metrics.AgentConfig{Goroutines: 1, Duration: budget, Cutoff: meta.MAX_DEPTH, LowConfidence: meta.LOW_CONFIDENCE}
}

func newAgent(id int, base metrics.AgentConfig) metrics.AgentConfig {
	base.ID = id
	return base
}

// Parallelization pairs a sequential baseline against agents with more goroutines.
func Parallelization(base metrics.AgentConfig) ([]metrics.AgentConfig, []MatchUp) {
	configs := []metrics.AgentConfig{}
	for id, goroutines := range []int{2, 4, 8} {
		config := newAgent(id+1, base)
		config.Goroutines = goroutines
		configs = append(configs, config)
	}
	return withBaseline(newAgent(0, base), configs)
}

// Cutoff pairs full playouts against playouts cut off at increasing depths.
func Cutoff(base metrics.AgentConfig) ([]metrics.AgentConfig, []MatchUp) {
	configs := []metrics.AgentConfig{}
	for id, cutoff := range []int{4, 10, 20} {
		config := newAgent(id+1, base)
		config.Cutoff = cutoff
		configs = append(configs, config)
	}
	return withBaseline(newAgent(0, base), configs)
}

// LowConfidence pairs the default draw fallback against other thresholds, 0 disabling it.
func LowConfidence(base metrics.AgentConfig) ([]metrics.AgentConfig, []MatchUp) {
	configs := []metrics.AgentConfig{}
	for id, threshold := range []float64{0, 0.4} {
		config := newAgent(id+1, base)
		config.LowConfidence = threshold
		configs = append(configs, config)
	}
	return withBaseline(newAgent(0, base), configs)
}

// ByName returns the preset experiment called name, with every agent derived from base.
func ByName(name string, base metrics.AgentConfig) ([]metrics.AgentConfig, []MatchUp, error) {
	var configs []metrics.AgentConfig
	var matchUps []MatchUp
	switch name {
	case "parallelization":
		configs, matchUps = Parallelization(base)
	case "cutoff":
		configs, matchUps = Cutoff(base)
	case "low_confidence":
		configs, matchUps = LowConfidence(base)
	default:
		return nil, nil, fmt.Errorf("unknown experiment %q, want parallelization, cutoff or low_confidence", name)
	}
	return configs, matchUps, nil
}

func withBaseline(baseline metrics.AgentConfig, configs []metrics.AgentConfig) ([]metrics.AgentConfig, []MatchUp) {
	matchUps := []MatchUp{}
	for _, config := range configs {
		matchUps = append(matchUps, MatchUp{baseline, config})
	}
	return append([]metrics.AgentConfig{baseline}, configs...), matchUps
}

// Run plays games per match up and writes the agent configs, game records and
// move records as CSV under outDir. Games are played on boards built with
// boardOptions. It returns the directory written to.
func Run(name string, configs []metrics.AgentConfig, matchUps []MatchUp, games int, outDir string, boardOptions ...game.Option) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			first, second := matchUp[0], matchUp[1]
			if i%2 == 1 {
				first, second = second, first
			}

			result, err := runGame(first, second, boardOptions)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++

			record := metrics.GameRecord{
				Seq:        count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: result.GameMetric(game.Player1),
			}
			switch result.Winner {
			case game.Player1:
				record.WinnerAgent = first.ID
			case game.Player2:
				record.WinnerAgent = second.ID
			}
			gameRecords = append(gameRecords, record)
			for _, mm := range result.MoveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, result.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored experiment records in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game, config1 moving first
func runGame(config1, config2 metrics.AgentConfig, boardOptions []game.Option) (engine.Result, error) {
	e := engine.LocalEngine(game.NewBoard(boardOptions...), player.NewMCTS(createOptions(config1)...), player.NewMCTS(createOptions(config2)...), nil)
	return e.Run()
}

func createOptions(config metrics.AgentConfig) []searcher.Option {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Seed != 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}
	options = append(options, searcher.WithLowConfidence(config.LowConfidence))

	options = append(options, searcher.WithMetrics())
	return options
}
