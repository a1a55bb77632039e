package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewRefineCommand creates the refine transcript command
func NewRefineCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine [TRANSCRIPT_ID]",
		Short: "Clean up a transcript with the LLM refiner",
		Long: `Send the transcript's current segments through the LLM refiner and
save the refined result as a new version. The previous version is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptID := args[0]

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

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

			cmd.Printf("Refining %d segments (%d words)...\n",
				len(session.Segments()), session.WordCount())

			if err := session.Refine(ctx); err != nil {
				return fmt.Errorf("failed to refine transcript: %w", err)
			}

			cmd.Printf("Refined transcript saved (%d segments, %d words)\n",
				len(session.Segments()), session.WordCount())
			return nil
		},
	}

	return cmd
}
