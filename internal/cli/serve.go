package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Override [api].host")
	serveCmd.Flags().Int("port", 0, "Override [api].port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over HTTP",
	Long: `Start the moodmap HTTP API. Records, the mood summary, text analysis and
the location permission are exposed under /api; Prometheus metrics under
/metrics when [api].metrics is enabled.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := openDaemon(cmd, "")
	if err != nil {
		return err
	}
	defer d.Close()

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		d.Config.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		d.Config.API.Port = port
	}
	return d.Serve(cmd.Context())
}
