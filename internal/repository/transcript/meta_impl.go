package transcript

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
	"github.com/etrmlabs/scriba/internal/repository/common"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// metaRepository implements MetaRepository using PostgreSQL
type metaRepository struct {
	pool Pool
}

// NewMetaRepository creates a new instance of MetaRepository
func NewMetaRepository(pool Pool) MetaRepository {
	return &metaRepository{pool: pool}
}

// Create creates a new transcript metadata record
func (r *metaRepository) Create(ctx context.Context, meta *model.TranscriptMeta) error {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Status == "" {
		meta.Status = model.StatusReady
	}
	now := time.Now()
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now

	sql := `INSERT INTO transcript_meta
		(id, title, file_id, file_url, file_type, data_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, sql,
		meta.ID,
		meta.Title,
		meta.FileID,
		meta.FileURL,
		meta.FileType,
		meta.DataID,
		meta.Status,
		meta.CreatedAt,
		meta.UpdatedAt,
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create transcript meta")
	}
	return nil
}

// GetByID retrieves transcript metadata by its ID
func (r *metaRepository) GetByID(ctx context.Context, id string) (*model.TranscriptMeta, error) {
	sql := `SELECT id, title, file_id, file_url, file_type, data_id, status, created_at, updated_at
		FROM transcript_meta WHERE id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var meta model.TranscriptMeta
	err := row.Scan(
		&meta.ID,
		&meta.Title,
		&meta.FileID,
		&meta.FileURL,
		&meta.FileType,
		&meta.DataID,
		&meta.Status,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "transcript not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get transcript meta")
	}
	return &meta, nil
}

// ListRecent retrieves one page of non-deleted transcript metadata, most
// recently updated first
func (r *metaRepository) ListRecent(ctx context.Context, page int) ([]*model.TranscriptMeta, error) {
	if page < 0 {
		page = 0
	}
	sql := `SELECT id, title, file_id, file_url, file_type, data_id, status, created_at, updated_at
		FROM transcript_meta
		WHERE status <> $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, sql, model.StatusDeleted, PageSize, page*PageSize)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list recent transcripts")
	}
	defer rows.Close()

	var metas []*model.TranscriptMeta
	for rows.Next() {
		var meta model.TranscriptMeta
		err := rows.Scan(
			&meta.ID,
			&meta.Title,
			&meta.FileID,
			&meta.FileURL,
			&meta.FileType,
			&meta.DataID,
			&meta.Status,
			&meta.CreatedAt,
			&meta.UpdatedAt,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan transcript meta")
		}
		metas = append(metas, &meta)
	}

	return metas, nil
}

// SetCurrentData repoints the metadata at a new current data version
func (r *metaRepository) SetCurrentData(ctx context.Context, metaID, dataID string) error {
	sql := `UPDATE transcript_meta SET data_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, sql, metaID, dataID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update transcript data pointer")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "transcript not found")
	}
	return nil
}

// MarkDeleted soft-deletes a transcript metadata record
func (r *metaRepository) MarkDeleted(ctx context.Context, metaID string) error {
	sql := `UPDATE transcript_meta SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, sql, metaID, model.StatusDeleted)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete transcript")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "transcript not found")
	}
	return nil
}
