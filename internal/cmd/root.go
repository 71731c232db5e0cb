// Package cmd implements the formrelay CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/formrelay/formrelay/internal/observability"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formrelay",
	Short: "Contact-form submission backend",
	Long: `formrelay accepts contact-form submissions on a single endpoint,
validates and sanitizes them, enforces a per-site allowlist and a
per-client rate limit, and relays each admitted submission as an email
notification.

Use the subcommands to perform specific operations.`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// CLI logger is available to every command; serve switches to the
	// structured server logger once config is loaded.
	cobra.OnInitialize(func() { observability.InitCLILogger(verbose) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars apply either way)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}
