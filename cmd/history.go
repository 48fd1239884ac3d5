package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past assessment attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer env.Close()

		sessions, err := env.repo.QuerySessionSummaries(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No assessments taken yet.")
			return nil
		}

		rows := make([][]string, 0, len(sessions))
		for _, s := range sessions {
			score := "-"
			if s.Score != nil {
				score = fmt.Sprintf("%d%%", *s.Score)
			}
			rows = append(rows, []string{
				s.StartedAt.Local().Format("2006-01-02 15:04"),
				s.AssessmentTitle,
				string(s.Status),
				fmt.Sprintf("%d/%d", s.Answered, s.Total),
				strconv.Itoa(s.Correct),
				score,
				s.Duration.Round(time.Second).String(),
			})
		}
		fmt.Println(renderTable(
			[]string{"Started", "Assessment", "Status", "Answered", "Correct", "Score", "Duration"}, rows))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum sessions to show (0 for all)")
}
