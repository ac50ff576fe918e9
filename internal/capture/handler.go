package capture

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/beadreader/pkg/handlers"
	"github.com/JaimeStill/beadreader/pkg/routes"
)

var errInvalidToggle = errors.New(`body must be {"enabled": true|false}`)

// Handler exposes monitor status and the automatic-analysis toggle.
type Handler struct {
	monitor *Monitor
	logger  *slog.Logger
}

func NewHandler(monitor *Monitor, logger *slog.Logger) *Handler {
	return &Handler{
		monitor: monitor,
		logger:  logger.With("handler", "monitor"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/monitor",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Status},
			{Method: "PUT", Pattern: "", Handler: h.Toggle},
		},
	}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.monitor.Status())
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errInvalidToggle)
		return
	}

	h.monitor.SetEnabled(*body.Enabled)
	handlers.RespondJSON(w, http.StatusOK, h.monitor.Status())
}
