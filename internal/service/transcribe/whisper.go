package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
	"github.com/etrmlabs/scriba/internal/service/common"
)

// whisperResult represents the JSON output of the Whisper CLI
type whisperResult struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// whisperTranscriber implements Transcriber using the Whisper CLI.
// Whisper does not diarize, so segments carry no speaker attribution.
type whisperTranscriber struct {
	cmdRunner common.CmdRunner
	model     string
}

// NewWhisperTranscriber creates a Transcriber backed by local Whisper
func NewWhisperTranscriber() Transcriber {
	return &whisperTranscriber{
		cmdRunner: common.NewCmdRunner(),
		model:     "base",
	}
}

// NewWhisperTranscriberWithCmdRunner creates a Whisper Transcriber with a
// custom CmdRunner (for testing)
func NewWhisperTranscriberWithCmdRunner(cmdRunner common.CmdRunner, whisperModel string) Transcriber {
	return &whisperTranscriber{cmdRunner: cmdRunner, model: whisperModel}
}

// TranscribeAudio transcribes an audio file using the Whisper CLI
func (t *whisperTranscriber) TranscribeAudio(ctx context.Context, audioPath string) ([]model.Segment, error) {
	if audioPath == "" {
		return nil, errors.New(errors.CodeInvalidArg, "audio path is required")
	}

	tempDir, err := os.MkdirTemp("", "scriba-whisper-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	args := []string{
		audioPath,
		"--model", t.model,
		"--output_format", "json",
		"--output_dir", tempDir,
		"--temperature", "0",
	}

	if _, err := t.cmdRunner.Run(ctx, "whisper", args...); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, t.formatWhisperError(err, audioPath))
	}

	baseName := filepath.Base(audioPath)
	baseName = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	jsonPath := filepath.Join(tempDir, baseName+".json")

	jsonData, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to read whisper output")
	}

	var result whisperResult
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to parse whisper output")
	}

	segments := make([]model.Segment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, model.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return segments, nil
}

// formatWhisperError provides user-friendly error messages for Whisper failures
func (t *whisperTranscriber) formatWhisperError(err error, audioPath string) string {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "No such file or directory") && strings.Contains(errMsg, "whisper"):
		return "Whisper is not installed. Please install OpenAI Whisper: pip install openai-whisper"
	case strings.Contains(errMsg, "not enough memory") || strings.Contains(errMsg, "OutOfMemoryError"):
		return fmt.Sprintf("insufficient memory for model '%s'. Try using a smaller model (tiny, base, small)", t.model)
	case strings.Contains(errMsg, "Invalid model"):
		return fmt.Sprintf("unsupported model '%s'. Available models: tiny, base, small, medium, large", t.model)
	case strings.Contains(errMsg, "File not found") || strings.Contains(errMsg, "No such file"):
		return fmt.Sprintf("audio file not found: %s", filepath.Base(audioPath))
	case strings.Contains(errMsg, "Unsupported format") || strings.Contains(errMsg, "format not supported"):
		return fmt.Sprintf("unsupported audio format: %s", filepath.Ext(audioPath))
	default:
		return fmt.Sprintf("whisper transcription failed with model '%s' - %s", t.model, errMsg)
	}
}
