package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
)

const defaultDeepgramURL = "https://api.deepgram.com/v1/listen"

// deepgramResponse mirrors the subset of the prerecorded-listen response we
// consume: diarized utterances with timing.
type deepgramResponse struct {
	Results struct {
		Utterances []struct {
			Start      float64 `json:"start"`
			End        float64 `json:"end"`
			Transcript string  `json:"transcript"`
			Speaker    int     `json:"speaker"`
		} `json:"utterances"`
	} `json:"results"`
}

// deepgramTranscriber implements Transcriber using the Deepgram prerecorded API
type deepgramTranscriber struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepgramTranscriber creates a Transcriber backed by Deepgram
func NewDeepgramTranscriber(apiKey string) Transcriber {
	return &deepgramTranscriber{
		apiKey:  apiKey,
		baseURL: defaultDeepgramURL,
		client:  http.DefaultClient,
	}
}

// NewDeepgramTranscriberWithClient creates a Deepgram Transcriber with a custom
// endpoint and HTTP client (for testing)
func NewDeepgramTranscriberWithClient(apiKey, baseURL string, client *http.Client) Transcriber {
	return &deepgramTranscriber{apiKey: apiKey, baseURL: baseURL, client: client}
}

// TranscribeAudio transcribes an audio file with diarization and utterance
// splitting enabled, mapping each utterance to one segment
func (t *deepgramTranscriber) TranscribeAudio(ctx context.Context, audioPath string) ([]model.Segment, error) {
	if audioPath == "" {
		return nil, errors.New(errors.CodeInvalidArg, "audio path is required")
	}
	if t.apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "deepgram API key is not configured")
	}

	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidArg, "failed to open audio file")
	}
	defer audio.Close()

	url := t.baseURL + "?model=nova-2&smart_format=true&diarize=true&utterances=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, audio)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build deepgram request")
	}
	req.Header.Set("Authorization", "Token "+t.apiKey)
	req.Header.Set("Content-Type", contentTypeFor(audioPath))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "deepgram transcription failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to read deepgram response")
	}
	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("deepgram transcription failed (status %d)", resp.StatusCode)
		return nil, errors.New(errors.CodeExternal, message)
	}

	var parsed deepgramResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse deepgram response")
	}

	// No utterances is a valid response for silent or empty audio
	segments := make([]model.Segment, 0, len(parsed.Results.Utterances))
	for _, utterance := range parsed.Results.Utterances {
		segments = append(segments, model.Segment{
			Start:   utterance.Start,
			End:     utterance.End,
			Text:    utterance.Transcript,
			Speaker: fmt.Sprintf("Speaker %d", utterance.Speaker),
		})
	}
	return segments, nil
}

func contentTypeFor(audioPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(audioPath)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
