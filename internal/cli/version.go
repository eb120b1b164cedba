package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moodmap/moodmap/internal/api"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the moodmap version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "moodmap %s\n", api.Version)
	},
}
