package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/studyhub/internal/app"
	"github.com/abhisek/studyhub/internal/logging"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI. Logs
// go to a file so they don't corrupt the screen.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logging.DefaultFile(dbPath)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	env, err := openEnv(cmd, logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer env.Close()

	env.log.Info().Str("db", env.dbPath).Msg("starting")
	return app.Run(app.Options{
		Catalog:        env.catalog,
		EventRepo:      env.repo,
		Sink:           env.sink(),
		Log:            env.log,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadTick:     cfg.UploadTick,
	})
}
