package api

import (
	"net/http"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	groups := []routes.Group{
		domain.Sessions.Handler().Routes(),
		domain.Analyses.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		newInterpretHandler(runtime.Logger).routes(),
	}

	if domain.Monitor != nil {
		groups = append(groups, capture.NewHandler(domain.Monitor, runtime.Logger).Routes())
	}

	for _, pattern := range routes.Register(mux, groups...) {
		runtime.Logger.Debug("route registered", "pattern", pattern)
	}
}
