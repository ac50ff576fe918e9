package api

import (
	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/internal/infrastructure"
	"github.com/JaimeStill/beadreader/internal/workflow"
	"github.com/JaimeStill/beadreader/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow   *workflow.Runtime
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Guard:     infra.Guard,
			Model:     infra.Model,
		},
		Workflow: &workflow.Runtime{
			Model:  infra.Model,
			Logger: logger,
		},
		Pagination: cfg.API.Pagination,
	}
}
