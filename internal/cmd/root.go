// Package cmd wires the cobra command tree: serve, config, languages
// and version.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lingogate/lingogate/internal/observability"
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
	Use:   "lingogate",
	Short: "Rate-limited gateway in front of a translation backend",
	Long: `lingogate fronts a text-translation backend with a token-bucket
rate limiter and a concurrency throttler, exposing quota state through
response headers so clients can self-throttle.

Use the subcommands to perform specific operations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		observability.InitCLILogger(verbose)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to ./config/lingogate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}
