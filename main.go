package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	p1 := flag.String("p1", "", "Player 1 kind: h|human|m|mcts")
	p2 := flag.String("p2", "", "Player 2 kind: h|human|m|mcts")
	budget := flag.Duration("time", 0, "Search time budget per move")
	depth := flag.Int("depth", 0, "Playout depth cutoff")
	threshold := flag.Float64("threshold", 0, "Win rate under which draws count in favour of a move")
	goroutines := flag.Int("goroutines", 0, "Number of goroutines for parallel playouts")
	episodes := flag.Int("episodes", 0, "Number of playouts per move, overrides -time")
	seed := flag.Uint64("seed", 0, "Rollout seed, 0 for a fresh one per move")
	level := flag.String("log-level", "", "Log level: debug, info, warn, error")
	experiment := flag.String("experiment", "", "Run a self-play experiment: parallelization, cutoff or low_confidence")
	games := flag.Int("games", 0, "Games per experiment match up")
	outDir := flag.String("out", "", "Experiment output directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	// Flags set on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p1":
			cfg.Players.P1 = *p1
		case "p2":
			cfg.Players.P2 = *p2
		case "time":
			cfg.Search.TimeBudget = *budget
		case "depth":
			cfg.Search.MaxDepth = *depth
		case "threshold":
			cfg.Search.LowConfidence = *threshold
		case "goroutines":
			cfg.Search.Goroutines = *goroutines
		case "episodes":
			cfg.Search.Episodes = *episodes
		case "seed":
			cfg.Search.Seed = *seed
		case "log-level":
			cfg.Log.Level = *level
		case "games":
			cfg.Experiment.Games = *games
		case "out":
			cfg.Experiment.OutputDir = *outDir
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.Log)

	if *experiment != "" {
		runExperiment(*experiment, cfg)
		return
	}
	runGame(cfg)
}

func setupLogging(c config.Log) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
}

func runGame(cfg config.Config) {
	// Both human players read from the same scanner over stdin
	in := bufio.NewScanner(os.Stdin)
	sources := [2]player.MoveSource{}
	for i, kind := range []string{cfg.Players.P1, cfg.Players.P2} {
		source, err := player.Make(kind, in, os.Stdout, cfg.SearchOptions()...)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to create player %d", i+1)
		}
		sources[i] = source
	}

	board := game.NewBoard(cfg.BoardOptions()...)
	e := engine.LocalEngine(board, sources[0], sources[1], engine.NewTextPresenter(os.Stdout))
	result, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Str("game", result.ID).Msg("game aborted")
	}

	if result.Draw {
		fmt.Println("Game over! Draw.")
	} else {
		fmt.Printf("Game over! Player %d (%s) wins.\n", result.Winner, sources[result.Winner-1])
	}
}

func runExperiment(name string, cfg config.Config) {
	base := experiments.DefaultAgent(cfg.Search.TimeBudget)
	base.Episodes = cfg.Search.Episodes
	base.Cutoff = cfg.Search.MaxDepth
	base.LowConfidence = cfg.Search.LowConfidence
	base.Seed = cfg.Search.Seed

	configs, matchUps, err := experiments.ByName(name, base)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up experiment")
	}
	dir, err := experiments.Run(name, configs, matchUps, cfg.Experiment.Games, cfg.Experiment.OutputDir, cfg.BoardOptions()...)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
	fmt.Printf("Experiment records written to %s\n", dir)
}
