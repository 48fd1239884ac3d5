package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer env.Close()

		items, err := env.catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, a := range items {
			rows = append(rows, []string{
				a.ID,
				a.Title,
				a.Topic,
				string(a.Difficulty),
				strconv.Itoa(a.QuestionCount()),
				fmt.Sprintf("%d min", a.TimeLimitMinutes),
				statusText(a),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "Title", "Topic", "Difficulty", "Questions", "Time", "Status"}, rows))
		return nil
	},
}

func statusText(a assessment.Assessment) string {
	if a.EffectiveStatus() == assessment.StatusCompleted && a.LastScore != nil {
		return fmt.Sprintf("completed (%d%%)", *a.LastScore)
	}
	return string(a.EffectiveStatus())
}
