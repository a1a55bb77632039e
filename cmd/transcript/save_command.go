package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/etrmlabs/scriba/internal/model"
)

// NewSaveCommand creates the save transcript command
func NewSaveCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [TRANSCRIPT_ID]",
		Short: "Save edited segment text as a new transcript version",
		Long: `Read a JSON array of segments from a file or stdin and save their text
as the transcript's new current version. Edits apply to the stored segment
with the same start time; timing and speakers stay as stored. Earlier
versions are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptID := args[0]

			// Get flags
			inputPath, _ := cmd.Flags().GetString("file")

			segments, err := readSegments(inputPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := resolveServices(ctx, services)
			if err != nil {
				return err
			}
			defer cleanup()

			session, err := openSession(ctx, svc, transcriptID)
			if err != nil {
				return err
			}
			defer session.Close()

			for _, segment := range segments {
				session.Capture().Register(segment.Start, staticText(segment.Text))
			}
			if err := session.Save(ctx); err != nil {
				return fmt.Errorf("failed to save transcript: %w", err)
			}

			cmd.Printf("Saved new version %s (%d segments, %d words)\n",
				session.Transcript().DataID, len(session.Segments()), session.WordCount())
			return nil
		},
	}

	// Add flags
	cmd.Flags().String("file", "", "JSON segments file (defaults to stdin)")

	return cmd
}

// readSegments decodes a JSON segment array from a file, or stdin when no
// path is given
func readSegments(path string) ([]model.Segment, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open segments file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read segments: %w", err)
	}

	var segments []model.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("failed to parse segments JSON: %w", err)
	}
	return segments, nil
}
