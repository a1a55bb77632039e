package transcript

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/etrmlabs/scriba/internal/model"
	"github.com/etrmlabs/scriba/internal/service/transcribe"
)

// NewImportCommand creates the import transcript command
func NewImportCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [AUDIO_FILE]",
		Short: "Transcribe an audio file into a new transcript",
		Long: `Upload an audio file to storage, transcribe it, and store the result
as the first version of a new transcript.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audioPath := args[0]

			// Get flags
			title, _ := cmd.Flags().GetString("title")
			engine, _ := cmd.Flags().GetString("engine")

			if title == "" {
				base := filepath.Base(audioPath)
				title = strings.TrimSuffix(base, filepath.Ext(base))
			}

			// Transcription can take a while for long recordings
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()

			svc, cleanup, err := resolveServices(ctx, services)
			if err != nil {
				return err
			}
			defer cleanup()

			transcriber, err := newTranscriber(engine, svc)
			if err != nil {
				return err
			}

			fileID := model.NoFile
			fileURL := ""
			fileType := model.FileTypeNone
			if svc.Files != nil {
				f, err := os.Open(audioPath)
				if err != nil {
					return fmt.Errorf("failed to open audio file: %w", err)
				}
				contentType := mime.TypeByExtension(filepath.Ext(audioPath))
				cmd.Println("Uploading audio...")
				fileID, fileURL, err = svc.Files.Upload(ctx, filepath.Base(audioPath), contentType, f)
				f.Close()
				if err != nil {
					return fmt.Errorf("failed to upload audio: %w", err)
				}
				fileType = model.FileTypeAudio
			}

			cmd.Printf("Transcribing with %s...\n", engine)
			segments, err := transcriber.TranscribeAudio(ctx, audioPath)
			if err != nil {
				return fmt.Errorf("failed to transcribe audio: %w", err)
			}

			meta, err := svc.Store.CreateTranscriptMeta(ctx, title, fileID, fileURL, fileType)
			if err != nil {
				return fmt.Errorf("failed to create transcript: %w", err)
			}

			transcript, err := svc.Store.SaveTranscriptEdits(ctx, meta.ID, segments)
			if err != nil {
				return fmt.Errorf("failed to store transcription: %w", err)
			}

			cmd.Printf("Transcript created successfully (ID: %s, %d segments, %d words)\n",
				transcript.ID, len(transcript.Segments), model.CountWords(transcript.Segments))
			return nil
		},
	}

	// Add flags
	cmd.Flags().String("title", "", "Transcript title (defaults to the audio file name)")
	cmd.Flags().String("engine", "deepgram", "Transcription engine: deepgram or whisper")

	return cmd
}

// newTranscriber selects the transcription engine for an import
func newTranscriber(engine string, svc *Services) (transcribe.Transcriber, error) {
	switch engine {
	case "deepgram":
		if svc.Config == nil || svc.Config.DeepgramAPIKey == "" {
			return nil, fmt.Errorf("deepgram engine requires DEEPGRAM_API_KEY to be configured")
		}
		return transcribe.NewDeepgramTranscriber(svc.Config.DeepgramAPIKey), nil
	case "whisper":
		return transcribe.NewWhisperTranscriber(), nil
	default:
		return nil, fmt.Errorf("unknown transcription engine: %s (expected deepgram or whisper)", engine)
	}
}
