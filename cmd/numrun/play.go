package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numrun/internal/games/numrun"
	"github.com/vovakirdan/numrun/internal/platform/tui"
	"github.com/vovakirdan/numrun/internal/registry"
	"github.com/vovakirdan/numrun/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run directly, skipping the menu.

Controls:
  Left/Right, A/D   - Walk
  Space/W/Up        - Jump
  1 2 3             - Answer a question
  Enter             - Dismiss a panel
  H                 - Help
  R                 - Play again (after the run ends)
  B/Esc             - Leave the run
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Slower Tortubits, more lives
  normal - Default tuning
  hard   - Faster Tortubits, fewer lives

Examples:
  numrun play
  numrun play --level 3
  numrun play --difficulty hard --sound
  numrun play --config ./my-tuning.yaml --campaign ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
}

func runPlay(_ *cobra.Command, _ []string) error {
	numrun.SetStartLevel(flagLevel)

	game, err := registry.Create(numrun.ID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
