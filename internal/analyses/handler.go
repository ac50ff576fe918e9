package analyses

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/sessions"
	"github.com/JaimeStill/beadreader/pkg/formatting"
	"github.com/JaimeStill/beadreader/pkg/handlers"
	"github.com/JaimeStill/beadreader/pkg/pagination"
	"github.com/JaimeStill/beadreader/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, pagination config, and frame size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "analyses"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyses",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{sessionId}", Handler: h.Analyze},
			{Method: "GET", Pattern: "/{sessionId}", Handler: h.List},
			{Method: "GET", Pattern: "/{sessionId}/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{sessionId}/{id}/frame", Handler: h.Frame},
		},
	}
}

// Analyze accepts a multipart form with an "image" file and runs one analysis cycle.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("sessionId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, sessions.ErrInvalidID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, h.tooLarge())
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadForm, err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, capture.ErrEmptyFrame)
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, h.tooLarge())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, capture.ErrEmptyFrame)
		return
	}

	frame, err := capture.NewFrame(data, header.Header.Get("Content-Type"), string(sessions.SourceUpload))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	a, err := h.sys.Analyze(r.Context(), AnalyzeCommand{
		SessionID: sessionID,
		Frame:     frame,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// List returns a paginated list of a session's analyses, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.PathValue("sessionId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, sessions.ErrInvalidID)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), sessionID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single analysis of a session.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	sessionID, id, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	a, err := h.sys.Find(r.Context(), sessionID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Frame streams the archived image an analysis was run against.
func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	sessionID, id, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	body, contentType, err := h.sys.Frame(r.Context(), sessionID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if n, err := io.Copy(w, body); err != nil {
		h.logger.Warn("frame stream interrupted", "id", id, "bytes", n, "error", err)
	}
}

func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	sessionID, err := uuid.Parse(r.PathValue("sessionId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, sessions.ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return uuid.Nil, uuid.Nil, false
	}

	return sessionID, id, true
}

func (h *Handler) tooLarge() error {
	return fmt.Errorf("%w (limit %s)", capture.ErrFrameTooLarge, formatting.FormatBytes(h.maxUploadSize, 1))
}
