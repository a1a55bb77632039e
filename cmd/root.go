package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scriba",
	Short: "Audio transcript editing toolkit",
	Long: `scriba transcribes interview audio, keeps every saved revision of the
transcript, and exports polished Word documents.`,
}

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
