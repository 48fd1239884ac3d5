package cmd

import (
	"github.com/abhisek/studyhub/internal/config"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/spf13/cobra"
)

// cfg is loaded before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "studyhub",
	Short: "Terminal study companion",
	Long: `Studyhub is a terminal app for taking assessments, uploading study
material and tracking progress over time.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			c.LogLevel = lvl
			if err := c.Validate(); err != nil {
				return err
			}
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYHUB_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "YAML or JSON assessment catalog (overrides STUDYHUB_CATALOG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides STUDYHUB_LOG_LEVEL env var)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYHUB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveCatalogPath returns --catalog, then STUDYHUB_CATALOG. Empty means
// the built-in catalog.
func resolveCatalogPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return p
	}
	if cfg != nil {
		return cfg.CatalogPath
	}
	return ""
}
