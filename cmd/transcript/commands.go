// Package transcript wires the transcript subcommands of the CLI.
package transcript

import (
	"github.com/spf13/cobra"
)

// NewTranscriptCommand creates the main transcript command
func NewTranscriptCommand(services *Services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Manage transcripts",
		Long:  `Import, list, edit, refine, export, and delete audio transcripts`,
	}

	// Add subcommands
	cmd.AddCommand(NewImportCommand(services))
	cmd.AddCommand(NewListCommand(services))
	cmd.AddCommand(NewGetCommand(services))
	cmd.AddCommand(NewSaveCommand(services))
	cmd.AddCommand(NewRefineCommand(services))
	cmd.AddCommand(NewExportCommand(services))
	cmd.AddCommand(NewDeleteCommand(services))

	return cmd
}
