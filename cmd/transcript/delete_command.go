package transcript

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete transcript command
func NewDeleteCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [TRANSCRIPT_ID]",
		Short: "Delete a transcript",
		Long: `Mark a transcript deleted so it no longer appears in listings.
Saved versions remain in the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptID := args[0]

			ctx := context.Background()
			svc, cleanup, err := resolveServices(ctx, services)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Store.WipeTranscript(ctx, transcriptID); err != nil {
				return fmt.Errorf("failed to delete transcript: %w", err)
			}

			cmd.Printf("Transcript %s deleted\n", transcriptID)
			return nil
		},
	}

	return cmd
}
