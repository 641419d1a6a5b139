// Package cmd implements the CLI commands for LinkPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/linkpipe/config"
	"github.com/gaurav-prasanna/linkpipe/core/fetch"
)

var (
	flagConfig string

	v      = viper.New()
	cfg    config.Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "linkpipe",
	Short: "LinkPipe - describe what a link points at",
	Long: `LinkPipe probes a link and produces a structured description of it:
file details for images, videos and attachments; title, description, icons
and media for web pages; and the embed record of pages that advertise oEmbed.

Usage:
  linkpipe enrich <url> [flags]
  linkpipe links <url> [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Config file (default: ./linkpipe.yaml or $HOME/.config/linkpipe/linkpipe.yaml)")
	flags.String("user-agent", "", "User-Agent sent with every request")
	flags.Duration("timeout", 0, "Per-request timeout (default 30s)")
	flags.String("probe-method", "", "HTTP method used to probe links: GET or HEAD (default GET)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default info)")
	flags.String("log-format", "", "Log format: text or json (default text)")
	flags.String("output_dir", "", "Output directory (default: current directory)")

	bindings := map[string]string{
		config.KeyUserAgent:   "user-agent",
		config.KeyTimeout:     "timeout",
		config.KeyProbeMethod: "probe-method",
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyOutputDir:   "output_dir",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(v, flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	configureLogger(logger, cfg, cmd.ErrOrStderr())
	return nil
}

// newFetcher builds the HTTP fetcher described by the loaded config.
func newFetcher() *fetch.HTTPFetcher {
	return fetch.New(fetch.Options{
		Timeout:      cfg.Timeout,
		UserAgent:    cfg.UserAgent,
		ProbeMethod:  cfg.ProbeMethod,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, logger)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
