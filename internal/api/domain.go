package api

import (
	"github.com/JaimeStill/beadreader/internal/analyses"
	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
// Monitor is nil unless periodic capture is configured.
type Domain struct {
	Sessions sessions.System
	Analyses analyses.System
	Monitor  *capture.Monitor
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	sessionsSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		sessionsSystem,
		runtime.Storage,
		runtime.Guard,
		runtime.Workflow,
		runtime.Logger,
		runtime.Pagination,
	)

	d := &Domain{
		Sessions: sessionsSystem,
		Analyses: analysesSystem,
	}

	if cfg.Monitor.URL != "" {
		source := capture.NewHTTPSource(
			cfg.Monitor.URL,
			cfg.API.MaxUploadSizeBytes(),
			cfg.Monitor.IntervalDuration(),
		)
		screen := newScreenSession(sessionsSystem, analysesSystem)

		d.Monitor = capture.NewMonitor(
			source,
			cfg.Monitor.IntervalDuration(),
			screen.cycle,
			runtime.Logger,
		)
		d.Monitor.SetEnabled(cfg.Monitor.Enabled)
	}

	return d
}
