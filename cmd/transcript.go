package cmd

import (
	"github.com/etrmlabs/scriba/cmd/transcript"
)

func init() {
	// Services are built lazily inside each subcommand so config and database
	// access are only required when a transcript command actually runs
	rootCmd.AddCommand(transcript.NewTranscriptCommand(nil))
}
