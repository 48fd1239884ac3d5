package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/studyhub/internal/assessment"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/spf13/cobra"
)

var takeCmd = &cobra.Command{
	Use:   "take <assessment-id>",
	Short: "Take an assessment in line mode",
	Long: `Answer an assessment question by question on the command line.

Type the option letter or number and press Enter. Type q to exit; the
attempt is recorded as exited.`,
	Args: cobra.ExactArgs(1),
	RunE: runTake,
}

func runTake(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	ctrl := session.NewController(env.catalog, env.sink())
	if err := ctrl.Start(ctx, args[0]); err != nil {
		return err
	}
	snap := ctrl.Snapshot()
	fmt.Printf("%s (%s, %d questions", snap.AssessmentTitle, snap.Topic, snap.Total)
	if snap.TimeLimit > 0 {
		fmt.Printf(", %d min", int(snap.TimeLimit.Minutes()))
	}
	fmt.Print(")\n\n")

	scanner := bufio.NewScanner(os.Stdin)
	for !ctrl.IsComplete() {
		q, _ := ctrl.CurrentQuestion()
		snap := ctrl.Snapshot()

		fmt.Printf("── Question %d/%d ──\n", snap.Index+1, snap.Total)
		fmt.Println(q.Prompt)
		for j, opt := range q.Options {
			fmt.Printf("  %c) %s\n", 'A'+j, opt)
		}

		for {
			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				ctrl.Reset()
				return nil
			}
			answer := strings.TrimSpace(scanner.Text())
			if strings.EqualFold(answer, "q") {
				ctrl.Reset()
				fmt.Println("Assessment exited.")
				return nil
			}
			idx, ok := parseOption(answer, len(q.Options))
			if !ok {
				fmt.Printf("Enter A-%c or 1-%d.", 'A'+len(q.Options)-1, len(q.Options))
				continue
			}
			if err := ctrl.SelectOption(idx); err != nil {
				return err
			}
			break
		}

		if err := ctrl.Advance(ctx); err != nil {
			return err
		}
		fmt.Println()
	}

	printResults(ctrl.Snapshot())
	return nil
}

// parseOption accepts a letter (a, B) or a 1-based number.
func parseOption(s string, n int) (int, bool) {
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i - 1, i >= 1 && i <= n
	}
	if len(s) == 1 {
		c := strings.ToLower(s)[0]
		i := int(c - 'a')
		return i, i >= 0 && i < n
	}
	return 0, false
}

func printResults(snap session.Snapshot) {
	fmt.Printf("── Score: %d%% (%d/%d correct) ──\n\n", snap.Score, snap.Correct, snap.Total)
	for _, e := range snap.Review {
		mark := "\033[32m✓\033[0m"
		if !e.IsCorrect {
			mark = "\033[31m✗\033[0m"
		}
		fmt.Printf("%s Q%d %s\n", mark, e.Position+1, e.Question.Prompt)
		fmt.Printf("   Your answer: %s\n", optionText(e.Question, e.Selected))
		if !e.IsCorrect {
			fmt.Printf("   Correct:     %s\n", optionText(e.Question, e.CorrectIndex))
		}
		if e.Explanation != "" {
			fmt.Printf("   %s\n", e.Explanation)
		}
	}
}

func optionText(q assessment.Question, i int) string {
	return fmt.Sprintf("%c) %s", 'A'+i, q.Option(i))
}
