package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/etrmlabs/scriba/internal/model"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "under a minute", seconds: 42.7, want: "00:42"},
		{name: "minutes and seconds", seconds: 125, want: "02:05"},
		{name: "over an hour", seconds: 3723, want: "1:02:03"},
		{name: "zero", seconds: 0, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimestamp(tt.seconds))
		})
	}
}

func TestFormatSegmentLine(t *testing.T) {
	assert.Equal(t, "ETRM: hello", formatSegmentLine(model.Segment{Text: "hello", Speaker: "ETRM"}))
	assert.Equal(t, "hello", formatSegmentLine(model.Segment{Text: "hello"}))
}

func TestFormatFileInfo(t *testing.T) {
	tests := []struct {
		name string
		meta *model.TranscriptMeta
		want string
	}{
		{
			name: "no file",
			meta: &model.TranscriptMeta{FileID: model.NoFile, FileType: model.FileTypeNone},
			want: "(none)",
		},
		{
			name: "file with URL",
			meta: &model.TranscriptMeta{FileID: "file-1", FileURL: "https://cdn/file-1", FileType: model.FileTypeAudio},
			want: "https://cdn/file-1",
		},
		{
			name: "file without URL",
			meta: &model.TranscriptMeta{FileID: "file-1", FileType: model.FileTypeAudio},
			want: "file-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFileInfo(tt.meta))
		})
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "lon...", truncateString("long string", 3))
}
