package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := analytics.Build(cmd.Context(), env.repo, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Completed attempts:    %d (%d exited)\n", d.Attempts, d.Exited)
		fmt.Printf("Assessments completed: %d\n", d.CompletedAssessments)
		fmt.Printf("Average score:         %d%%\n", d.AverageScore)
		fmt.Printf("Best score:            %d%%\n", d.BestScore)
		fmt.Printf("Total study time:      %s\n", d.TotalStudyTime.Round(time.Second))
		fmt.Printf("Documents processed:   %d\n\n", d.DocumentsProcessed)

		if len(d.TopicProgress) > 0 {
			rows := make([][]string, 0, len(d.TopicProgress))
			for _, tp := range d.TopicProgress {
				rows = append(rows, []string{
					tp.Topic,
					fmt.Sprintf("%d%%", tp.Percent),
					fmt.Sprintf("%d/%d", tp.Correct, tp.Attempted),
				})
			}
			fmt.Println(renderTable([]string{"Topic", "Accuracy", "Correct"}, rows))
		}

		rows := make([][]string, 0, len(d.Week))
		for _, day := range d.Week {
			rows = append(rows, []string{
				day.Label(),
				day.StudyTime.Round(time.Second).String(),
				strconv.Itoa(day.Completed),
			})
		}
		fmt.Println(renderTable([]string{"Day", "Study time", "Completed"}, rows))
		return nil
	},
}
