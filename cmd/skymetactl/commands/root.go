// Package commands implements the CLI commands for skymetactl, the metadata
// control plane's admin CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudmesh-io/skymeta/pkg/apiclient"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	serverURL string
	asJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "skymetactl",
	Short: "Admin CLI for the skymeta metadata control plane",
	Long: `skymetactl talks to a running skymetad server's HTTP façade to locate
objects, inspect placement status, and inspect the metrics sink.

Use "skymetactl [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "metadata control plane server URL")
	rootCmd.PersistentFlags().BoolVarP(&asJSON, "json", "j", false, "output JSON instead of a table")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(objectCmd)
	rootCmd.AddCommand(metricsCmd)
}

func client() *apiclient.Client {
	return apiclient.New(serverURL)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("skymetactl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		return nil
	},
}
