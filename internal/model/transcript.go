package model

import (
	"strings"
	"time"
)

// Segment represents a time-bounded span of transcript text attributed to a speaker.
// Start doubles as the segment's identity throughout the editor: pending edits,
// capture handles and active-segment tracking are all keyed by start time, so two
// segments of one transcript may never share a start.
type Segment struct {
	Start   float64 `json:"start" db:"start"`     // Start time in seconds
	End     float64 `json:"end" db:"end"`         // End time in seconds
	Text    string  `json:"text" db:"text"`       // Text content for this time span
	Speaker string  `json:"speaker,omitempty" db:"speaker"`
}

// Transcript status values. Deleted transcripts stay in the database and are
// filtered out of listings.
const (
	StatusReady   = "ready"
	StatusDeleted = "deleted"
)

// File type values for transcript audio
const (
	FileTypeAudio = "audio"
	FileTypeNone  = "none"
)

// NoFile marks a transcript created without uploaded audio
const NoFile = "no_file"

// TranscriptMeta represents transcript metadata for listings and lookup.
// DataID points at the current TranscriptData version.
type TranscriptMeta struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	FileID    string    `json:"file_id" db:"file_id"`
	FileURL   string    `json:"file_url" db:"file_url"`
	FileType  string    `json:"file_type" db:"file_type"`
	DataID    string    `json:"data_id" db:"data_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TranscriptData is one immutable version of a transcript's segments.
// Saving never rewrites an existing version; it appends a new row whose
// PreviousDataID points at the superseded one.
type TranscriptData struct {
	ID             string    `json:"id" db:"id"`
	MetaID         string    `json:"meta_id" db:"meta_id"`
	PreviousDataID string    `json:"previous_data_id" db:"previous_data_id"`
	Segments       []Segment `json:"segments" db:"segments"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Transcript joins metadata and its current data version for one editing session
type Transcript struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	DataID         string    `json:"data_id"`
	PreviousDataID string    `json:"previous_data_id"`
	FileID         string    `json:"file_id"`
	FileURL        string    `json:"file_url"`
	FileType       string    `json:"file_type"`
	Status         string    `json:"status"`
	Segments       []Segment `json:"segments"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JoinMetaAndData combines a metadata row and a data version into a Transcript
func JoinMetaAndData(meta *TranscriptMeta, data *TranscriptData) *Transcript {
	return &Transcript{
		ID:             meta.ID,
		Title:          meta.Title,
		DataID:         data.ID,
		PreviousDataID: data.PreviousDataID,
		FileID:         meta.FileID,
		FileURL:        meta.FileURL,
		FileType:       meta.FileType,
		Status:         meta.Status,
		Segments:       data.Segments,
		CreatedAt:      meta.CreatedAt,
		UpdatedAt:      meta.UpdatedAt,
	}
}

// Split breaks a Transcript back into its metadata and data parts
func (t *Transcript) Split() (*TranscriptMeta, *TranscriptData) {
	meta := &TranscriptMeta{
		ID:        t.ID,
		Title:     t.Title,
		FileID:    t.FileID,
		FileURL:   t.FileURL,
		FileType:  t.FileType,
		DataID:    t.DataID,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	data := &TranscriptData{
		ID:             t.DataID,
		MetaID:         t.ID,
		PreviousDataID: t.PreviousDataID,
		Segments:       t.Segments,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	return meta, data
}

// CountWords returns the total whitespace-separated word count across segments
func CountWords(segments []Segment) int {
	total := 0
	for _, segment := range segments {
		total += len(strings.Fields(segment.Text))
	}
	return total
}
