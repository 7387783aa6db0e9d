package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numrun/internal/games/numrun"
	"github.com/vovakirdan/numrun/internal/platform/tui"
	"github.com/vovakirdan/numrun/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a starting level, Enter to play.
Leaving a run brings you back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Scores
  Q            - Quit

Examples:
  numrun menu
  numrun menu --fps 30
  numrun menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	campaign, err := loadCampaign()
	if err != nil {
		return fmt.Errorf("loading campaign: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	player := playerName()

	for {
		result, err := tui.RunMenu(store, cfg, campaign)
		if err != nil {
			return err
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue
		}

		cfg.Seed = time.Now().UnixNano()
		goBack, err := tui.Run(numrun.NewAtLevel(result.Level), store, cfg, player)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !goBack {
			return nil
		}
	}
}
