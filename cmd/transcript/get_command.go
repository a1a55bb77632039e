package transcript

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCommand creates the get transcript command
func NewGetCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [TRANSCRIPT_ID]",
		Short: "Get a transcript with its current segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptID := args[0]

			ctx := context.Background()
			svc, cleanup, err := resolveServices(ctx, services)
			if err != nil {
				return err
			}
			defer cleanup()

			transcript, err := svc.Store.GetTranscript(ctx, transcriptID)
			if err != nil {
				return fmt.Errorf("failed to get transcript: %w", err)
			}

			cmd.Printf("ID: %s\n", transcript.ID)
			cmd.Printf("Title: %s\n", transcript.Title)
			cmd.Printf("Data version: %s\n", transcript.DataID)
			cmd.Printf("Segments: %d\n\n", len(transcript.Segments))

			for _, segment := range transcript.Segments {
				cmd.Printf("[%s - %s] %s\n", formatTimestamp(segment.Start), formatTimestamp(segment.End), formatSegmentLine(segment))
			}

			return nil
		},
	}

	return cmd
}
