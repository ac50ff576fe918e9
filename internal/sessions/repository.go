package sessions

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/beadreader/internal/interpret"
	"github.com/JaimeStill/beadreader/pkg/repository"
	"github.com/JaimeStill/beadreader/pkg/storage"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
}

// New creates a session repository implementing the System interface.
func New(db *sql.DB, store storage.System, logger *slog.Logger) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "sessions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Session, error) {
	if !cmd.Source.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, cmd.Source)
	}

	q := `
		INSERT INTO sessions(id, source)
		VALUES ($1, $2)
		RETURNING ` + columns

	s, err := repository.QueryOne(ctx, r.db, q, []any{uuid.New(), cmd.Source}, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("session opened", "id", s.ID, "source", s.Source)
	return &s, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q := `SELECT ` + columns + ` FROM sessions WHERE id = $1`

	s, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Record(ctx context.Context, id uuid.UUID, o interpret.Outcome) (*Session, error) {
	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		current, err := repository.QueryOne(
			ctx, tx,
			`SELECT `+columns+` FROM sessions WHERE id = $1 FOR UPDATE`,
			[]any{id},
			scanSession,
		)
		if err != nil {
			return Session{}, err
		}

		current.Apply(o)

		history, err := encodeHistory(current.History)
		if err != nil {
			return Session{}, err
		}

		q := `
			UPDATE sessions
			SET history = $2::jsonb, advisory = $3, status = $4, analysis_count = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + columns

		args := []any{id, history, current.Advisory, current.Status, current.Analyses}
		return repository.QueryOne(ctx, tx, q, args, scanSession)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &s, nil
}

func (r *repo) Close(ctx context.Context, id uuid.UUID) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		return repository.ExecExpectOne(ctx, tx, "DELETE FROM sessions WHERE id = $1", id)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	prefix := FramePrefix(id)
	n, err := r.storage.DeletePrefix(ctx, prefix)
	if err != nil {
		r.logger.Warn(
			"frame purge failed after session delete",
			"prefix", prefix,
			"error", err,
		)
	}

	r.logger.Info("session closed", "id", id, "frames_purged", n)
	return nil
}
