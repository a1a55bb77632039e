// Package storage uploads audio files to object storage and hands back
// stable identifiers and public URLs.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/etrmlabs/scriba/internal/errors"
)

// FileStore defines operations for audio file storage
type FileStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (fileID, fileURL string, err error)
}

// supabaseStore implements FileStore on a Supabase storage bucket
type supabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore creates a FileStore over a Supabase storage bucket
func NewSupabaseStore(url, key, bucket string) FileStore {
	return &supabaseStore{
		client: storage_go.NewClient(url, key, nil),
		bucket: bucket,
	}
}

// Upload stores the file under a fresh unique name and returns its public URL
func (s *supabaseStore) Upload(_ context.Context, name, contentType string, r io.Reader) (string, string, error) {
	if name == "" {
		return "", "", errors.New(errors.CodeInvalidArg, "file name is required")
	}

	fileID := uuid.NewString() + filepath.Ext(name)
	options := storage_go.FileOptions{ContentType: &contentType}

	if _, err := s.client.UploadFile(s.bucket, fileID, r, options); err != nil {
		return "", "", errors.Wrap(err, errors.CodeExternal, "failed to upload file to storage")
	}

	public := s.client.GetPublicUrl(s.bucket, fileID)
	return fileID, public.SignedURL, nil
}
