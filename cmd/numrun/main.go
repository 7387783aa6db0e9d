// numrun is a terminal math platformer: run, jump on Tortubits and bump
// question blocks to answer arithmetic questions.
//
// Usage:
//
//	numrun                   - Start the level picker menu
//	numrun play              - Play straight from a level
//	numrun levels            - List the campaign's levels
//	numrun scores            - Show high scores and recent runs
//	numrun serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.numrun/scores.db)
//	--config <path>      - Custom tuning YAML
//	--campaign <path>    - Custom campaign YAML
//	--difficulty <name>  - easy, normal, hard
//	--questions <path>   - Question bank YAML tried before the generator
//	--sound              - Play sound effects
//	--log <path>         - Write a debug log
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/numrun/internal/audio"
	"github.com/vovakirdan/numrun/internal/core"
	"github.com/vovakirdan/numrun/internal/games/numrun"
	"github.com/vovakirdan/numrun/internal/levels"
	"github.com/vovakirdan/numrun/internal/question"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCampaign   string
	flagDifficulty string
	flagQuestions  string
	flagSound      bool
	flagVolume     float64
	flagLogPath    string
	flagLogLevel   string
	flagPlayer     string
)

// cleanup runs after the command finishes.
var cleanup []func()

func main() {
	err := rootCmd.Execute()
	for i := len(cleanup) - 1; i >= 0; i-- {
		cleanup[i]()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "numrun",
	Short: "Number Run - a math platformer for your terminal",
	Long: `Number Run is a side-scrolling platformer where every ? block asks
an arithmetic question. Clear the blocks, stomp the Tortubits and make it
to the castle.

Available commands:
  play     - Play a run from a chosen level
  menu     - Interactive level picker (default)
  levels   - Show the campaign
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play

Examples:
  numrun
  numrun play --level 2
  numrun play --difficulty easy --sound
  numrun serve --ssh :2222
  numrun scores --runs`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed for generated questions (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.numrun/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	pf.StringVar(&flagCampaign, "campaign", "", "Path to custom campaign YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagQuestions, "questions", "", "Question bank YAML, asked before the generator")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")
	pf.Float64Var(&flagVolume, "volume", 0.3, "Sound volume (0-1]")
	pf.StringVar(&flagLogPath, "log", "", "Write a log to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagPlayer, "player", "", "Name recorded with scores (default: your user name)")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup pushes the global flags into the numrun package before any run is
// created.
func setup(_ *cobra.Command, _ []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	numrun.SetLogger(logger)
	numrun.SetConfigPath(flagConfig)
	numrun.SetCampaignPath(flagCampaign)
	numrun.SetDifficultyPreset(flagDifficulty)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := question.NewGenerator(seed)
	if flagQuestions != "" {
		bank, err := question.LoadBank(flagQuestions, seed)
		if err != nil {
			return fmt.Errorf("question bank: %w", err)
		}
		numrun.SetQuestionProvider(question.First(bank, gen))
	} else {
		numrun.SetQuestionProvider(gen)
	}

	if flagSound {
		synth := audio.NewSynth(flagVolume)
		if err := synth.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			numrun.SetSoundSink(synth)
			cleanup = append(cleanup, synth.Close)
		}
	}
	return nil
}

func newLogger() (*log.Logger, error) {
	var w io.Writer = io.Discard
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		cleanup = append(cleanup, func() { f.Close() })
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "numrun",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, nil
}

// runtimeConfig sizes the run to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadCampaign returns the campaign the runs will play.
func loadCampaign() (*levels.Campaign, error) {
	if flagCampaign != "" {
		return levels.Load(flagCampaign)
	}
	return levels.Default()
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
