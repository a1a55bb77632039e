package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/etrmlabs/scriba/internal/errors"
)

func TestSupabaseStore_Upload(t *testing.T) {
	var gotPath, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"Key":"audio/uploaded"}`))
	}))
	defer server.Close()

	store := NewSupabaseStore(server.URL, "service-key", "audio")
	fileID, fileURL, err := store.Upload(context.Background(), "interview.mp3", "audio/mpeg", strings.NewReader("fake audio"))

	require.NoError(t, err)
	// Uploads get a fresh unique name keeping the original extension
	assert.True(t, strings.HasSuffix(fileID, ".mp3"))
	assert.NotEqual(t, "interview.mp3", fileID)
	assert.Contains(t, gotPath, "/object/audio/")
	assert.Equal(t, "audio/mpeg", gotContentType)
	assert.Contains(t, fileURL, fileID)
}

func TestSupabaseStore_Upload_EmptyName(t *testing.T) {
	store := NewSupabaseStore("http://localhost", "key", "audio")

	_, _, err := store.Upload(context.Background(), "", "audio/mpeg", strings.NewReader("x"))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidArg, apperrors.CodeOf(err))
}

func TestSupabaseStore_Upload_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"statusCode":"403","error":"Unauthorized","message":"invalid key"}`))
	}))
	defer server.Close()

	store := NewSupabaseStore(server.URL, "bad-key", "audio")
	_, _, err := store.Upload(context.Background(), "interview.mp3", "audio/mpeg", strings.NewReader("x"))

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExternal, apperrors.CodeOf(err))
}
