// Package screens holds what the application screens share.
package screens

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyhub/internal/catalog"
	"github.com/abhisek/studyhub/internal/notify"
	"github.com/abhisek/studyhub/internal/session"
	"github.com/abhisek/studyhub/internal/store"
)

// Deps are the services screens are built from. Repo may be nil when
// history is unavailable.
type Deps struct {
	Catalog        catalog.Provider
	Controller     *session.Controller
	Repo           store.EventRepo
	Sink           notify.Sink
	Log            zerolog.Logger
	MaxUploadBytes int64
	UploadTick     time.Duration
	Clock          func() time.Time
}

// Now returns the current time from Clock, or time.Now.
func (d Deps) Now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// Notify forwards n to Sink if one is set.
func (d Deps) Notify(n notify.Notification) {
	if d.Sink == nil {
		return
	}
	if n.Time.IsZero() {
		n.Time = d.Now()
	}
	d.Sink.Notify(context.Background(), n)
}
