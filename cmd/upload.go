package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/studyhub/internal/notify"
	"github.com/abhisek/studyhub/internal/upload"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload study material (PDF, DOC, DOCX, TXT)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd, os.Stderr)
		if err != nil {
			return err
		}
		defer env.Close()

		f, err := upload.Inspect(args[0], cfg.MaxUploadBytes)
		if err != nil {
			return err
		}

		task := upload.NewTask(f)
		task.Tick = cfg.UploadTick
		res, runErr := task.Run(cmd.Context(), func(p upload.Progress) {
			fmt.Printf("\r%-10s %3d%%", p.Stage, p.Percent)
		})
		fmt.Println()

		// Record even when the run was interrupted.
		ctx := context.WithoutCancel(cmd.Context())
		if err := env.repo.AppendUploadEvent(ctx, upload.EventFor(f, res, runErr)); err != nil {
			env.log.Error().Err(err).Str("file", f.Name).Msg("record upload")
		}
		if runErr != nil {
			return runErr
		}

		env.sink().Notify(ctx, notify.Notification{
			Kind:     notify.KindUploadCompleted,
			FileName: f.Name,
			Time:     time.Now(),
		})
		fmt.Printf("%s (%s, %s) processed.\n", f.Name, f.MIMEType, upload.FormatSize(f.Size))
		fmt.Printf("Topics: %s\n", strings.Join(res.Topics, ", "))
		return nil
	},
}
