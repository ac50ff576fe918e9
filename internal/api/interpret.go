package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/pkg/handlers"
	"github.com/JaimeStill/beadreader/pkg/routes"
)

// maxInterpretBody bounds the raw reply accepted by the interpret endpoint.
const maxInterpretBody = 1 << 20

var errBodyTooLarge = errors.New("response text exceeds 1MB")

type interpretHandler struct {
	logger *slog.Logger
}

func newInterpretHandler(logger *slog.Logger) *interpretHandler {
	return &interpretHandler{
		logger: logger.With("handler", "interpret"),
	}
}

func (h *interpretHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/interpret",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.interpret},
		},
	}
}

// interpret runs the response interpreter over a raw model reply without
// calling the inference API.
func (h *interpretHandler) interpret(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInterpretBody))
	if err != nil {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, errBodyTooLarge)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, interpret.Interpret(string(body)))
}
