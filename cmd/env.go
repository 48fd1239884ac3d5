package cmd

import (
	"fmt"
	"io"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/logging"
	"github.com/abhisek/studyhub/internal/notify"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// environment is what every command works against.
type environment struct {
	log     zerolog.Logger
	store   *store.Store
	repo    store.EventRepo
	catalog *catalog.Tracked
	dbPath  string
}

// sink persists notifications and logs them.
func (e *environment) sink() notify.Sink {
	return notify.Multi(store.NewEventSink(e.repo, e.log), notify.NewLogSink(e.log))
}

func (e *environment) Close() error {
	return e.store.Close()
}

// openEnv opens the store and catalog. Logs go to logOut.
func openEnv(cmd *cobra.Command, logOut io.Writer) (*environment, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat, logOut)

	base := catalog.Builtin()
	if p := resolveCatalogPath(cmd); p != "" {
		if base, err = catalog.LoadFile(p); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		log.Info().Str("path", p).Int("assessments", base.Len()).Msg("catalog loaded")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := st.EventRepo()

	return &environment{
		log:     log,
		store:   st,
		repo:    repo,
		catalog: catalog.NewTracked(base, repo),
		dbPath:  dbPath,
	}, nil
}
