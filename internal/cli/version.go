package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shpitdev/air-assist/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// No configuration is needed to print the version.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "airassist version %s\n", version.Current)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
