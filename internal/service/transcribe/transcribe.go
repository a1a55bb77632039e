// Package transcribe turns uploaded audio files into speaker-attributed
// transcript segments via external speech-to-text providers.
package transcribe

import (
	"context"

	"github.com/etrmlabs/scriba/internal/model"
)

// Transcriber defines operations for audio transcription. A provider response
// with no utterances yields an empty slice, not an error.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, audioPath string) ([]model.Segment, error)
}
