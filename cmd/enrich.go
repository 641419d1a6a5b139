package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/linkpipe/core/enrich"
	"github.com/gaurav-prasanna/linkpipe/core/links"
	"github.com/gaurav-prasanna/linkpipe/core/output"
)

var enrichFormat formatFlags

var enrichCmd = &cobra.Command{
	Use:   "enrich <url>",
	Short: "Describe what a single link points at",
	Long: `Enrich probes a link and, depending on its content type, describes the
file it serves or extracts the metadata and oEmbed record of the web page.

Examples:
  linkpipe enrich https://example.com/photo.jpg
  linkpipe enrich https://example.com --markdown --stdout
  linkpipe enrich https://example.com --pdf --output_dir ./cards`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichFormat.register(enrichCmd.Flags())
}

func runEnrich(cmd *cobra.Command, args []string) error {
	link, err := validateLink(args[0])
	if err != nil {
		return err
	}

	renderer, err := enrichFormat.renderer()
	if err != nil {
		return err
	}

	enricher := enrich.New(newFetcher(), logger)
	logger.WithField("link", link).Info("Enriching link")

	result := enricher.Enrich(cmd.Context(), link, cfg.UserAgent)
	if result == nil {
		return fmt.Errorf("probing %s: link is unreachable", link)
	}

	data, err := renderer.Render(link, result)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if enrichFormat.stdout {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(link, data, renderer.Extension())
	if err != nil {
		return err
	}
	logger.WithField("path", path).Info("Written")
	return nil
}

// validateLink upgrades scheme-relative links and requires an http(s) URL
// with a host.
func validateLink(raw string) (string, error) {
	link := links.Sanitize(raw)
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", raw)
	}
	return link, nil
}
