package analyses

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/internal/sessions"
	"github.com/JaimeStill/beadreader/internal/workflow"
	"github.com/JaimeStill/beadreader/pkg/guard"
	"github.com/JaimeStill/beadreader/pkg/pagination"
	"github.com/JaimeStill/beadreader/pkg/query"
	"github.com/JaimeStill/beadreader/pkg/repository"
	"github.com/JaimeStill/beadreader/pkg/storage"
)

type repo struct {
	db         *sql.DB
	sessions   sessions.System
	storage    storage.System
	guard      guard.System
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an analysis repository implementing the System interface.
func New(
	db *sql.DB,
	sess sessions.System,
	store storage.System,
	g guard.System,
	rt *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		sessions:   sess,
		storage:    store,
		guard:      g,
		rt:         rt,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Analysis, error) {
	if _, err := r.sessions.Find(ctx, cmd.SessionID); err != nil {
		return nil, err
	}

	release, err := r.guard.Acquire(ctx, cmd.SessionID.String())
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cmd.SessionID, err)
	}
	defer release()

	id := uuid.New()
	key := buildFrameKey(cmd.SessionID, id, cmd.Frame)

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Frame.Data), cmd.Frame.ContentType); err != nil {
		return nil, fmt.Errorf("archive frame: %w", err)
	}

	result := r.execute(ctx, cmd.Frame)

	a, err := r.insert(ctx, id, cmd, key, result)
	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating frame delete failed", "key", key, "error", delErr)
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("session %s: %w", cmd.SessionID, sessions.ErrNotFound)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if _, err := r.sessions.Record(ctx, cmd.SessionID, result.Outcome); err != nil {
		r.logger.Warn("session history update failed", "session_id", cmd.SessionID, "error", err)
	}

	r.logger.Info(
		"analysis recorded",
		"id", a.ID,
		"session_id", a.SessionID,
		"status", a.Status,
		"strip", a.Strip,
	)

	return a, nil
}

func (r *repo) List(
	ctx context.Context,
	sessionID uuid.UUID,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("SessionID", sessionID).
		WhereSearch(page.Search, "Advisory")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, sessionID, id uuid.UUID) (*Analysis, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("SessionID", sessionID).
		WhereEquals("ID", id).
		BuildSingleOrNull()

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Frame(ctx context.Context, sessionID, id uuid.UUID) (io.ReadCloser, string, error) {
	a, err := r.Find(ctx, sessionID, id)
	if err != nil {
		return nil, "", err
	}

	body, err := r.storage.Download(ctx, a.FrameKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	return body, a.ContentType, nil
}

// execute never fails: a workflow that cannot run is reported as an engine failure.
func (r *repo) execute(ctx context.Context, frame capture.Frame) *workflow.Result {
	result, err := workflow.Execute(ctx, r.rt, frame.Image())
	if err != nil {
		r.logger.Error("analysis workflow failed", "error", err)
		return &workflow.Result{
			Outcome:     interpret.Failure(),
			Failed:      true,
			CompletedAt: time.Now(),
		}
	}
	return result
}

func (r *repo) insert(
	ctx context.Context,
	id uuid.UUID,
	cmd AnalyzeCommand,
	key string,
	result *workflow.Result,
) (*Analysis, error) {
	seq := result.Outcome.Sequence
	if seq == nil {
		seq = []interpret.Color{}
	}

	sequence, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("encode sequence: %w", err)
	}

	q := `
		INSERT INTO analyses(id, session_id, sequence, advisory, status, response, frame_key, content_type, size_bytes, model_name, provider_name)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, session_id, sequence, advisory, status, response, frame_key, content_type, size_bytes, model_name, provider_name, created_at`

	args := []any{
		id,
		cmd.SessionID,
		string(sequence),
		result.Outcome.Advisory,
		result.Outcome.Status,
		result.Response,
		key,
		cmd.Frame.ContentType,
		int64(len(cmd.Frame.Data)),
		r.rt.Model.Name(),
		r.rt.Model.Provider(),
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		return repository.QueryOne(ctx, tx, q, args, scanAnalysis)
	})
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func buildFrameKey(sessionID, id uuid.UUID, frame capture.Frame) string {
	return sessions.FramePrefix(sessionID) + id.String() + frame.Extension()
}
