package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etrmlabs/scriba/internal/model"
)

// fakeStore implements the persistence facade over an in-memory transcript,
// advancing the data version on every save like the real append-only store.
type fakeStore struct {
	transcript *model.Transcript
	metas      []*model.TranscriptMeta
	saves      [][]model.Segment
	wiped      []string
}

func (f *fakeStore) GetTranscript(_ context.Context, id string) (*model.Transcript, error) {
	copied := *f.transcript
	return &copied, nil
}

func (f *fakeStore) GetRecentTranscriptMeta(_ context.Context, page int) ([]*model.TranscriptMeta, error) {
	return f.metas, nil
}

func (f *fakeStore) CreateTranscriptMeta(_ context.Context, title, fileID, fileURL, fileType string) (*model.TranscriptMeta, error) {
	return &model.TranscriptMeta{ID: "tr-new", Title: title}, nil
}

func (f *fakeStore) SaveTranscriptEdits(_ context.Context, metaID string, segments []model.Segment) (*model.Transcript, error) {
	f.saves = append(f.saves, segments)
	copied := *f.transcript
	copied.PreviousDataID = copied.DataID
	copied.DataID = fmt.Sprintf("data-%d", len(f.saves))
	copied.Segments = segments
	f.transcript = &copied
	return &copied, nil
}

func (f *fakeStore) WipeTranscript(_ context.Context, metaID string) error {
	f.wiped = append(f.wiped, metaID)
	return nil
}

type fakeRefiner struct {
	result []model.Segment
	input  []model.Segment
}

func (f *fakeRefiner) Refine(_ context.Context, segments []model.Segment) ([]model.Segment, error) {
	f.input = segments
	return f.result, nil
}

type fakeExporter struct {
	doc []byte
}

func (f *fakeExporter) ExportTranscript(_ context.Context, _ *model.TranscriptMeta, _ *model.TranscriptData) ([]byte, error) {
	return f.doc, nil
}

func testServices() (*Services, *fakeStore, *fakeRefiner, *fakeExporter) {
	store := &fakeStore{
		transcript: &model.Transcript{
			ID:     "tr-1",
			Title:  "Interview",
			DataID: "data-0",
			Status: model.StatusReady,
			Segments: []model.Segment{
				{Start: 0, End: 10, Text: "segment one", Speaker: "ETRM"},
				{Start: 10, End: 25, Text: "segment two", Speaker: "Guest"},
			},
		},
	}
	refiner := &fakeRefiner{}
	exporter := &fakeExporter{doc: []byte("PKdocx")}
	return &Services{Store: store, Refiner: refiner, Exporter: exporter}, store, refiner, exporter
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestSaveCommand_AppliesTextEditsBySegmentStart(t *testing.T) {
	svc, store, _, _ := testServices()

	payload, err := json.Marshal([]model.Segment{
		{Start: 10, End: 25, Text: "segment two rewritten"},
		{Start: 99, End: 100, Text: "no segment starts here"},
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "segments.json")
	require.NoError(t, os.WriteFile(path, payload, 0644))

	out := runCommand(t, NewSaveCommand(svc), "tr-1", "--file", path)

	require.Len(t, store.saves, 1)
	saved := store.saves[0]
	require.Len(t, saved, 2)
	assert.Equal(t, "segment one", saved[0].Text)
	assert.Equal(t, "segment two rewritten", saved[1].Text)
	assert.Contains(t, out, "Saved new version data-1 (2 segments, 5 words)")
}

func TestRefineCommand_SavesEditsThenRefined(t *testing.T) {
	svc, store, refiner, _ := testServices()
	refiner.result = []model.Segment{
		{Start: 0, End: 25, Text: "cleaned up", Speaker: "ETRM"},
	}

	out := runCommand(t, NewRefineCommand(svc), "tr-1")

	// Current state is persisted first, then the refined replacement
	require.Len(t, store.saves, 2)
	assert.Len(t, refiner.input, 2)
	assert.Equal(t, refiner.result, store.saves[1])
	assert.Contains(t, out, "Refined transcript saved (1 segments, 2 words)")
}

func TestExportCommand_WritesDocument(t *testing.T) {
	svc, store, _, _ := testServices()
	path := filepath.Join(t.TempDir(), "interview.docx")

	out := runCommand(t, NewExportCommand(svc), "tr-1", "--output", path)

	document, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PKdocx"), document)
	// Current state is persisted before rendering
	assert.Len(t, store.saves, 1)
	assert.Contains(t, out, "Exported transcript to "+path)
}

func TestDeleteCommand_SoftDeletes(t *testing.T) {
	svc, store, _, _ := testServices()

	out := runCommand(t, NewDeleteCommand(svc), "tr-1")

	assert.Equal(t, []string{"tr-1"}, store.wiped)
	assert.Contains(t, out, "Transcript tr-1 deleted")
}

func TestListCommand_TruncatesLongTitles(t *testing.T) {
	svc, store, _, _ := testServices()
	store.metas = []*model.TranscriptMeta{{
		ID:        "tr-1",
		Title:     strings.Repeat("a", 80),
		FileID:    model.NoFile,
		FileType:  model.FileTypeNone,
		UpdatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}

	out := runCommand(t, NewListCommand(svc))

	assert.Contains(t, out, strings.Repeat("a", 60)+"...")
	assert.NotContains(t, out, strings.Repeat("a", 61))
}
