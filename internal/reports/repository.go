package reports

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/lifecycle"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/pagination"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/query"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/repository"
	"github.com/Bashar-1216/arabic-academic-proofreader/pkg/storage"
)

const (
	artifactContentType = "text/plain; charset=utf-8"
	sweepConcurrency    = 4
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
	retention  time.Duration
}

// New creates a report repository implementing the System interface.
// A zero retention disables the startup sweep.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	retention time.Duration,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
		retention:  retention,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Start(lc *lifecycle.Coordinator) error {
	if r.retention <= 0 {
		return nil
	}

	lc.OnStartup(func() {
		if err := r.sweep(lc.Context()); err != nil {
			r.logger.Error("report retention sweep failed", "error", err)
		}
	})
	return nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	report, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &report, nil
}

// Create synthesizes the report text, stores the artifact, and registers
// the report. The artifact upload is compensated if the insert fails.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	if cmd.Result == nil {
		return nil, ErrNoResult
	}

	text := Synthesize(cmd.Result, cmd.Metadata)
	filename := ArtifactName(time.Now())

	id := uuid.New()
	key := buildStorageKey(id, filename)

	if err := r.storage.Upload(ctx, key, strings.NewReader(text), artifactContentType); err != nil {
		return nil, fmt.Errorf("upload report artifact: %w", err)
	}

	q := `
		INSERT INTO reports(id, session_id, document_id, filename, storage_key, size_bytes, suggestions_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, session_id, document_id, filename, storage_key, size_bytes, suggestions_count, created_at`

	insertArgs := []any{
		id,
		cmd.SessionID,
		cmd.DocumentID,
		filename,
		key,
		int64(len(text)),
		len(cmd.Result.Suggestions),
	}

	report, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReport)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating artifact delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"report generated",
		"id", report.ID,
		"session_id", report.SessionID,
		"suggestions", report.SuggestionsCount,
	)
	return &report, nil
}

// Download returns a scoped handle on the report artifact. The caller must
// close the body on every path.
func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Artifact, error) {
	report, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	body, err := r.storage.Download(ctx, report.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download report artifact: %w", err)
	}

	return &Artifact{
		Filename:    report.Filename,
		ContentType: artifactContentType,
		SizeBytes:   report.SizeBytes,
		Body:        body,
	}, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	report, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM reports WHERE id = $1",
			id,
		)
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, report.StorageKey); delErr != nil {
		r.logger.Warn(
			"artifact delete failed after DB delete",
			"key", report.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("report deleted", "id", id)
	return nil
}

// sweep deletes reports older than the retention window, removing artifacts
// concurrently before clearing their rows.
func (r *repo) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-r.retention)

	expired, err := repository.QueryMany(
		ctx, r.db,
		"SELECT "+projection.Columns()+" FROM "+projection.From()+" WHERE r.created_at < $1",
		[]any{cutoff},
		scanReport,
	)
	if err != nil {
		return fmt.Errorf("query expired reports: %w", err)
	}

	if len(expired) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepConcurrency)

	for _, report := range expired {
		g.Go(func() error {
			if err := r.storage.Delete(gctx, report.StorageKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("delete artifact %s: %w", report.StorageKey, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM reports WHERE created_at < $1", cutoff); err != nil {
		return fmt.Errorf("delete expired reports: %w", err)
	}

	r.logger.Info("expired reports swept", "count", len(expired), "cutoff", cutoff)
	return nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("reports/%s/%s", id, url.PathEscape(filename))
}
