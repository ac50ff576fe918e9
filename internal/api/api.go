// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/internal/infrastructure"
	"github.com/JaimeStill/beadreader/pkg/middleware"
	"github.com/JaimeStill/beadreader/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// When periodic capture is configured, the monitor is bound to the lifecycle
// coordinator and starts ticking once every startup hook has completed.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	if domain.Monitor != nil {
		if err := domain.Monitor.Start(infra.Lifecycle); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	logger := runtime.Infrastructure.Logger
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Recover(logger))
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, nil
}
