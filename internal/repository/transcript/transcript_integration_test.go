//go:build integration

package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
	"github.com/etrmlabs/scriba/internal/repository/common"
)

func TestStore_Integration_SaveChain(t *testing.T) {
	pool := common.SetupTestDB(t)
	store := NewStore(pool)
	ctx := context.Background()

	meta, err := store.CreateTranscriptMeta(ctx, "Integration Interview", "", "", "")
	require.NoError(t, err)
	require.NotEmpty(t, meta.ID)
	assert.Equal(t, model.NoFile, meta.FileID)

	// First save becomes the initial version with no predecessor
	first, err := store.SaveTranscriptEdits(ctx, meta.ID, []model.Segment{
		{Start: 0, End: 10, Text: "original text", Speaker: "ETRM"},
	})
	require.NoError(t, err)
	assert.Empty(t, first.PreviousDataID)

	// Second save chains back to the first
	second, err := store.SaveTranscriptEdits(ctx, meta.ID, []model.Segment{
		{Start: 0, End: 10, Text: "edited text", Speaker: "ETRM"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.DataID, second.PreviousDataID)
	assert.NotEqual(t, first.DataID, second.DataID)

	// The transcript resolves to the newest version
	current, err := store.GetTranscript(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, second.DataID, current.DataID)
	require.Len(t, current.Segments, 1)
	assert.Equal(t, "edited text", current.Segments[0].Text)

	// The superseded version is still readable through the chain
	data := NewDataRepository(pool)
	previous, err := data.GetByID(ctx, second.PreviousDataID)
	require.NoError(t, err)
	assert.Equal(t, "original text", previous.Segments[0].Text)
}

func TestStore_Integration_ListAndWipe(t *testing.T) {
	pool := common.SetupTestDB(t)
	store := NewStore(pool)
	ctx := context.Background()

	kept, err := store.CreateTranscriptMeta(ctx, "Kept", "", "", "")
	require.NoError(t, err)
	wiped, err := store.CreateTranscriptMeta(ctx, "Wiped", "", "", "")
	require.NoError(t, err)

	_, err = store.SaveTranscriptEdits(ctx, wiped.ID, []model.Segment{{Start: 0, End: 1, Text: "history"}})
	require.NoError(t, err)

	require.NoError(t, store.WipeTranscript(ctx, wiped.ID))

	// Deleted transcripts disappear from listings
	metas, err := store.GetRecentTranscriptMeta(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		ids = append(ids, m.ID)
	}
	assert.Contains(t, ids, kept.ID)
	assert.NotContains(t, ids, wiped.ID)

	// Their data history stays in the database
	meta := NewMetaRepository(pool)
	row, err := meta.GetByID(ctx, wiped.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDeleted, row.Status)

	data := NewDataRepository(pool)
	version, err := data.GetByID(ctx, row.DataID)
	require.NoError(t, err)
	assert.Equal(t, "history", version.Segments[0].Text)
}

func TestStore_Integration_MissingTranscript(t *testing.T) {
	pool := common.SetupTestDB(t)
	store := NewStore(pool)
	ctx := context.Background()

	_, err := store.GetTranscript(ctx, "does-not-exist")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	_, err = store.SaveTranscriptEdits(ctx, "does-not-exist", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
