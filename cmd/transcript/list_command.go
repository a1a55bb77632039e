package transcript

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list transcripts command
func NewListCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent transcripts",
		Long:  `List non-deleted transcripts one page at a time, newest updated first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get flags
			page, _ := cmd.Flags().GetInt("page")

			ctx := context.Background()
			svc, cleanup, err := resolveServices(ctx, services)
			if err != nil {
				return err
			}
			defer cleanup()

			metas, err := svc.Store.GetRecentTranscriptMeta(ctx, page)
			if err != nil {
				return fmt.Errorf("failed to list transcripts: %w", err)
			}

			if len(metas) == 0 {
				cmd.Println("No transcripts found on page", page)
				return nil
			}

			cmd.Printf("Transcripts (page %d):\n\n", page)
			for _, meta := range metas {
				cmd.Printf("ID: %s\n", meta.ID)
				cmd.Printf("Title: %s\n", truncateString(meta.Title, 60))
				cmd.Printf("Audio: %s\n", formatFileInfo(meta))
				cmd.Printf("Updated: %s\n", meta.UpdatedAt.Format("2006-01-02 15:04:05"))
				cmd.Println("---")
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().Int("page", 0, "Zero-based page of transcripts to list")

	return cmd
}
