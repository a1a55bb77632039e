package transcript

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
)

func TestStore_GetTranscript(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM transcript_meta WHERE id = \\$1").
		WithArgs("tr-1").
		WillReturnRows(mock.NewRows(metaColumns()).
			AddRow("tr-1", "Interview", model.NoFile, "", model.FileTypeNone,
				"data-1", model.StatusReady, now, now))
	mock.ExpectQuery("SELECT (.+) FROM transcript_data WHERE id = \\$1").
		WithArgs("data-1").
		WillReturnRows(mock.NewRows(dataColumns()).
			AddRow("data-1", "tr-1", "", []byte(`[{"start":0,"end":10,"text":"hello"}]`), now, now))

	transcript, err := store.GetTranscript(context.Background(), "tr-1")

	require.NoError(t, err)
	assert.Equal(t, "tr-1", transcript.ID)
	assert.Equal(t, "Interview", transcript.Title)
	assert.Equal(t, "data-1", transcript.DataID)
	require.Len(t, transcript.Segments, 1)
	assert.Equal(t, "hello", transcript.Segments[0].Text)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateTranscriptMeta(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		fileID   string
		fileType string
		wantErr  bool
	}{
		{name: "with audio file", title: "Interview", fileID: "file-1", fileType: model.FileTypeAudio},
		{name: "without file defaults applied", title: "Notes only"},
		{name: "empty title rejected", title: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			store := NewStore(mock)

			if !tt.wantErr {
				mock.ExpectExec("INSERT INTO transcript_meta").
					WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
						pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			meta, err := store.CreateTranscriptMeta(context.Background(), tt.title, tt.fileID, "", tt.fileType)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, meta.ID)
				assert.Equal(t, model.StatusReady, meta.Status)
				if tt.fileID == "" {
					assert.Equal(t, model.NoFile, meta.FileID)
					assert.Equal(t, model.FileTypeNone, meta.FileType)
				}
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_SaveTranscriptEdits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	now := time.Now()
	segments := []model.Segment{
		{Start: 0, End: 10, Text: "edited hello", Speaker: "ETRM"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM transcript_meta WHERE id = \\$1 FOR UPDATE").
		WithArgs("tr-1").
		WillReturnRows(mock.NewRows(metaColumns()).
			AddRow("tr-1", "Interview", model.NoFile, "", model.FileTypeNone,
				"data-1", model.StatusReady, now, now))
	mock.ExpectExec("INSERT INTO transcript_data").
		WithArgs(pgxmock.AnyArg(), "tr-1", "data-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE transcript_meta SET data_id").
		WithArgs("tr-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	transcript, err := store.SaveTranscriptEdits(context.Background(), "tr-1", segments)

	require.NoError(t, err)
	assert.Equal(t, "tr-1", transcript.ID)
	// The new version chains back to the superseded one
	assert.Equal(t, "data-1", transcript.PreviousDataID)
	assert.NotEqual(t, "data-1", transcript.DataID)
	assert.Equal(t, segments, transcript.Segments)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveTranscriptEdits_MissingTranscript(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM transcript_meta WHERE id = \\$1 FOR UPDATE").
		WithArgs("missing").
		WillReturnRows(mock.NewRows(metaColumns()))
	mock.ExpectRollback()

	_, err = store.SaveTranscriptEdits(context.Background(), "missing", nil)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WipeTranscript(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock)

	mock.ExpectExec("UPDATE transcript_meta SET status").
		WithArgs("tr-1", model.StatusDeleted).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = store.WipeTranscript(context.Background(), "tr-1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
