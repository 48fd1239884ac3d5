package cmd

import (
	"fmt"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog-file>",
	Short: "Check a YAML or JSON assessment catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		items, err := c.List(cmd.Context())
		if err != nil {
			return err
		}
		questions := 0
		for _, a := range items {
			questions += a.QuestionCount()
		}
		fmt.Printf("%s: %d assessments, %d questions, topics: %v\n",
			args[0], len(items), questions, catalog.Topics(items))
		return nil
	},
}
