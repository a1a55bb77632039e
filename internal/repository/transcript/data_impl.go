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

// dataRepository implements DataRepository using PostgreSQL.
// Segments are stored as a jsonb column; a version row is immutable once
// written.
type dataRepository struct {
	pool Pool
}

// NewDataRepository creates a new instance of DataRepository
func NewDataRepository(pool Pool) DataRepository {
	return &dataRepository{pool: pool}
}

// Create appends a new transcript data version
func (r *dataRepository) Create(ctx context.Context, data *model.TranscriptData) error {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	segments, err := json.Marshal(data.Segments)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode segments")
	}

	sql := `INSERT INTO transcript_data
		(id, meta_id, previous_data_id, segments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, sql,
		data.ID,
		data.MetaID,
		data.PreviousDataID,
		segments,
		data.CreatedAt,
		data.UpdatedAt,
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create transcript data")
	}
	return nil
}

// GetByID retrieves a transcript data version by its ID
func (r *dataRepository) GetByID(ctx context.Context, id string) (*model.TranscriptData, error) {
	sql := `SELECT id, meta_id, previous_data_id, segments, created_at, updated_at
		FROM transcript_data WHERE id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	var data model.TranscriptData
	var segments []byte
	err := row.Scan(
		&data.ID,
		&data.MetaID,
		&data.PreviousDataID,
		&segments,
		&data.CreatedAt,
		&data.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "transcript data not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get transcript data")
	}

	if err := json.Unmarshal(segments, &data.Segments); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to decode segments")
	}
	return &data, nil
}
