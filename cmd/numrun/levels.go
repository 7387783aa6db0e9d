package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numrun/internal/question"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign's levels",
	Long: `Shows every level of the campaign with its question tier and the
stages that carry a bonus room.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	campaign, err := loadCampaign()
	if err != nil {
		return fmt.Errorf("loading campaign: %w", err)
	}

	if len(campaign.Levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Printf("  %-5s  %-24s  %-6s  %-6s  %s\n", "Level", "Name", "Stages", "Tier", "Numbers")
	fmt.Printf("  %-5s  %-24s  %-6s  %-6s  %s\n", "-----", "----", "------", "----", "-------")
	for _, l := range campaign.Levels {
		rg := question.RangeForTier(l.Tier)
		fmt.Printf("  %-5d  %-24s  %-6d  %-6d  %d-%d\n", l.Number, l.Name, len(l.Stages), l.Tier, rg.Min, rg.Max)

		for _, s := range l.Stages {
			if s.Bonus == "" {
				continue
			}
			fmt.Printf("         stage %d: bonus room (%s)\n", s.Number, s.Bonus)
		}
	}

	fmt.Println()
	fmt.Println("Run 'numrun play --level <n>' to start at a level.")
	return nil
}
