// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, in-flight guard,
// vision model) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/internal/workflow"
	"github.com/JaimeStill/beadreader/pkg/database"
	"github.com/JaimeStill/beadreader/pkg/guard"
	"github.com/JaimeStill/beadreader/pkg/lifecycle"
	"github.com/JaimeStill/beadreader/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Guard     guard.System
	Model     workflow.Model
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	g, err := guard.New(&cfg.Guard, logger)
	if err != nil {
		return nil, fmt.Errorf("guard init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Guard:     g,
		Model:     NewModel(cfg),
	}, nil
}

// NewModel creates the vision model from the agent and analysis config.
func NewModel(cfg *config.Config) workflow.Model {
	return workflow.NewAgentModel(cfg.Agent, workflow.Sampling{
		Temperature: cfg.Analysis.TemperatureValue(),
		TopK:        cfg.Analysis.TopK,
	})
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Guard.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("guard start failed: %w", err)
	}
	return nil
}
