package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
	"github.com/etrmlabs/scriba/internal/repository/common"
)

// store implements the Store facade over the meta and data repositories
type store struct {
	pool Pool
	meta MetaRepository
	data DataRepository
}

// NewStore creates a Store over the given pool
func NewStore(pool Pool) Store {
	return &store{
		pool: pool,
		meta: NewMetaRepository(pool),
		data: NewDataRepository(pool),
	}
}

// GetTranscript retrieves a transcript with its current data version
func (s *store) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	meta, err := s.meta.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.data.GetByID(ctx, meta.DataID)
	if err != nil {
		return nil, err
	}
	return model.JoinMetaAndData(meta, data), nil
}

// GetRecentTranscriptMeta retrieves one page of recent transcript metadata
func (s *store) GetRecentTranscriptMeta(ctx context.Context, page int) ([]*model.TranscriptMeta, error) {
	return s.meta.ListRecent(ctx, page)
}

// CreateTranscriptMeta creates a new transcript metadata record
func (s *store) CreateTranscriptMeta(ctx context.Context, title, fileID, fileURL, fileType string) (*model.TranscriptMeta, error) {
	if title == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "title is required")
	}
	if fileID == "" {
		fileID = model.NoFile
	}
	if fileType == "" {
		fileType = model.FileTypeNone
	}

	meta := &model.TranscriptMeta{
		Title:    title,
		FileID:   fileID,
		FileURL:  fileURL,
		FileType: fileType,
		Status:   model.StatusReady,
	}
	if err := s.meta.Create(ctx, meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// SaveTranscriptEdits appends a new data version and repoints the transcript
// at it inside one transaction. History is append-only: the previous version
// stays reachable through previous_data_id.
func (s *store) SaveTranscriptEdits(ctx context.Context, metaID string, segments []model.Segment) (*model.Transcript, error) {
	encoded, err := json.Marshal(segments)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode segments")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	var meta model.TranscriptMeta
	row := tx.QueryRow(ctx,
		`SELECT id, title, file_id, file_url, file_type, data_id, status, created_at, updated_at
		 FROM transcript_meta WHERE id = $1 FOR UPDATE`, metaID)
	err = row.Scan(
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

	now := time.Now()
	data := &model.TranscriptData{
		ID:             uuid.NewString(),
		MetaID:         meta.ID,
		PreviousDataID: meta.DataID,
		Segments:       segments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transcript_data
		 (id, meta_id, previous_data_id, segments, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		data.ID, data.MetaID, data.PreviousDataID, encoded, data.CreatedAt, data.UpdatedAt,
	)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to create transcript data")
	}

	_, err = tx.Exec(ctx,
		`UPDATE transcript_meta SET data_id = $2, updated_at = $3 WHERE id = $1`,
		meta.ID, data.ID, now,
	)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to update transcript data pointer")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to commit transcript edits")
	}

	meta.DataID = data.ID
	meta.UpdatedAt = now
	return model.JoinMetaAndData(&meta, data), nil
}

// WipeTranscript soft-deletes a transcript; its data version history is retained
func (s *store) WipeTranscript(ctx context.Context, metaID string) error {
	return s.meta.MarkDeleted(ctx, metaID)
}
