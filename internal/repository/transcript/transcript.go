// Package transcript persists transcript metadata and its append-only chain
// of data versions. Saving edits never rewrites a version: a new data row is
// inserted and the metadata repointed at it.
package transcript

import (
	"context"

	"github.com/etrmlabs/scriba/internal/model"
)

// PageSize is the fixed page size for recent-transcript listings
const PageSize = 15

// MetaRepository defines operations for transcript metadata persistence
type MetaRepository interface {
	Create(ctx context.Context, meta *model.TranscriptMeta) error
	GetByID(ctx context.Context, id string) (*model.TranscriptMeta, error)
	// ListRecent returns one page of non-deleted metadata rows, newest
	// updated first. page is zero-based.
	ListRecent(ctx context.Context, page int) ([]*model.TranscriptMeta, error)
	SetCurrentData(ctx context.Context, metaID, dataID string) error
	MarkDeleted(ctx context.Context, metaID string) error
}

// DataRepository defines operations for transcript data versions
type DataRepository interface {
	Create(ctx context.Context, data *model.TranscriptData) error
	GetByID(ctx context.Context, id string) (*model.TranscriptData, error)
}

// Store is the persistence facade the editing session and CLI consume
type Store interface {
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	GetRecentTranscriptMeta(ctx context.Context, page int) ([]*model.TranscriptMeta, error)
	CreateTranscriptMeta(ctx context.Context, title, fileID, fileURL, fileType string) (*model.TranscriptMeta, error)
	// SaveTranscriptEdits appends a new data version holding segments and
	// repoints the transcript at it; returns the new canonical transcript.
	SaveTranscriptEdits(ctx context.Context, metaID string, segments []model.Segment) (*model.Transcript, error)
	// WipeTranscript soft-deletes a transcript; its data history is retained
	WipeTranscript(ctx context.Context, metaID string) error
}
