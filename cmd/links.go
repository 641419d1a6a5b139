package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/linkpipe/config"
	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/enrich"
	"github.com/gaurav-prasanna/linkpipe/core/output"
	"github.com/gaurav-prasanna/linkpipe/crawl"
)

var (
	linksFormat  formatFlags
	linksOptions crawl.Options
	flagList     bool
)

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Enrich every link found on a page or in a sitemap",
	Long: `Links collects the outbound links of a page (or the entries of the site's
sitemap.xml) and enriches each of them concurrently.

Examples:
  linkpipe links https://example.com/blog --same-domain --markdown
  linkpipe links https://example.com --sitemap --json --output_dir ./out
  linkpipe links https://example.com --list`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	flags := linksCmd.Flags()
	linksFormat.register(flags)
	flags.BoolVar(&linksOptions.Sitemap, "sitemap", false, "Read links from the site's sitemap.xml")
	flags.BoolVar(&linksOptions.SameDomain, "same-domain", false, "Only keep links on the page's host")
	flags.BoolVar(&linksOptions.SkipAssets, "skip-assets", false, "Skip links to images, media and documents")
	flags.IntVar(&linksOptions.Depth, "depth", 0, "Levels of same-site pages to follow")
	flags.IntVar(&linksOptions.MaxLinks, "max-links", 100, "Maximum number of links to enrich")
	flags.BoolVar(&flagList, "list", false, "Print the discovered links without enriching them")
	flags.Int("concurrency", 0, "Links enriched in parallel (default 4)")

	if err := v.BindPFlag(config.KeyConcurrency, flags.Lookup("concurrency")); err != nil {
		panic(err)
	}
}

func runLinks(cmd *cobra.Command, args []string) error {
	page, err := validateLink(args[0])
	if err != nil {
		return err
	}

	renderer, err := linksFormat.renderer()
	if err != nil {
		return err
	}

	fetcher := newFetcher()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	runLog := logger.WithField("run", uuid.NewString())

	runLog.WithField("page", page).Info("Discovering links")
	found, err := crawl.New(fetcher, runLog).Discover(ctx, page, cfg.UserAgent, linksOptions)
	if err != nil {
		return fmt.Errorf("discovering links: %w", err)
	}
	runLog.WithField("count", len(found)).Info("Found links")

	if flagList {
		for _, link := range found {
			fmt.Fprintln(out, link)
		}
		return nil
	}

	results := enrich.New(fetcher, runLog).EnrichAll(ctx, found, cfg.UserAgent, cfg.Concurrency)

	var writer *output.Writer
	if !linksFormat.stdout {
		if writer, err = output.New(cfg.OutputDir); err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	var failed int
	for i, link := range found {
		log := runLog.WithField("link", link)
		result := results[link]
		if result == nil {
			log.Warn("Link is unreachable")
			failed++
		}

		if err := emit(out, writer, renderer, link, result, log); err != nil {
			log.WithError(err).Error("Writing output failed")
			if result != nil {
				failed++
			}
			continue
		}
		log.WithField("progress", fmt.Sprintf("%d/%d", i+1, len(found))).Debug("Done")
	}

	if failed > 0 {
		runLog.Warnf("%d/%d links failed", failed, len(found))
	}
	return nil
}

// emit renders one result and writes it to out, or to a file mirroring the
// link when writer is set.
func emit(out io.Writer, writer *output.Writer, renderer core.Renderer, link string, result *core.EnrichmentResult, log logrus.FieldLogger) error {
	data, err := renderer.Render(link, result)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if writer == nil {
		if _, err := out.Write(data); err != nil {
			return err
		}
		_, err := io.WriteString(out, "\n")
		return err
	}

	path, err := writer.WriteTree(link, data, renderer.Extension())
	if err != nil {
		return err
	}
	log.WithField("path", path).Info("Written")
	return nil
}
