package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	errs "auto-monocle/internal/errors"
)

var cfgFile string
var jsonOutput bool
var logLevel string
var logFormat string

// rootCmd represents the base command when called without any subcommands.
// On its own it performs a discovery run, which is what the add-on start
// script invokes.
var rootCmd = &cobra.Command{
	Use:   "auto-monocle",
	Short: "Discover Home Assistant camera streams for the Monocle Gateway",
	Long: `Queries Home Assistant, go2rtc and the UniFi Protect integration for camera
stream URLs and writes the Monocle Gateway configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDiscover,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorPrefix(err), err)
		stop()
		os.Exit(1)
	}
}

// errorPrefix sets fatal configuration errors apart from other failures.
func errorPrefix(err error) string {
	if errs.IsFatal(err) {
		return "Fatal:"
	}
	return "Error:"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "options file (default is /data/options.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text or json")
}
