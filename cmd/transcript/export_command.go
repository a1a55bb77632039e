package transcript

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export transcript command
func NewExportCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [TRANSCRIPT_ID]",
		Short: "Export a transcript as a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transcriptID := args[0]

			// Get flags
			outputPath, _ := cmd.Flags().GetString("output")

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

			document, err := session.Export(ctx)
			if err != nil {
				return fmt.Errorf("failed to export transcript: %w", err)
			}

			if outputPath == "" {
				outputPath = session.Transcript().Title + ".docx"
			}
			if err := os.WriteFile(outputPath, document, 0644); err != nil {
				return fmt.Errorf("failed to write document: %w", err)
			}

			cmd.Printf("Exported transcript to %s\n", outputPath)
			return nil
		},
	}

	// Add flags
	cmd.Flags().String("output", "", "Output file path (defaults to <title>.docx)")

	return cmd
}
