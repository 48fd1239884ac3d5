package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest what to study next",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		stats, err := env.repo.TopicAccuracy(ctx)
		if err != nil {
			return err
		}
		items, err := env.catalog.List(ctx)
		if err != nil {
			return err
		}

		for _, r := range analytics.Recommend(stats, items) {
			fmt.Printf("[%s] %s  (%s)\n", r.Priority, r.Title, r.Kind)
			fmt.Printf("    %s\n", r.Description)
			if r.AssessmentID != "" {
				fmt.Printf("    studyhub take %s  ~%d min\n", r.AssessmentID, int(r.EstimatedTime.Minutes()))
			}
			fmt.Println()
		}

		fmt.Println("Study tips:")
		for _, tip := range analytics.StudyTips {
			fmt.Printf("  %s: %s\n", tip.Category, tip.Text)
		}
		return nil
	},
}
