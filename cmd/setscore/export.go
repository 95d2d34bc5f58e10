package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/setscore/setscore/internal/catalog"
	"github.com/setscore/setscore/pkg/setlist"
	"github.com/setscore/setscore/pkg/transfer"
)

func newExportCmd() *cobra.Command {
	var (
		configPath  string
		storePath   string
		catalogPath string
		format      string
		outPath     string
		author      string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a prediction to JSON, CSV, text, or Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(exportOpts{
				id:          args[0],
				configPath:  configPath,
				storePath:   storePath,
				catalogPath: catalogPath,
				format:      format,
				outPath:     outPath,
				author:      author,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to the prediction store database")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the song catalog file")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, csv, text, or markdown")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default: derived from the prediction name)")
	cmd.Flags().StringVar(&author, "author", "", "Author name to embed in text and markdown output")

	return cmd
}

type exportOpts struct {
	id          string
	configPath  string
	storePath   string
	catalogPath string
	format      string
	outPath     string
	author      string
}

func exportExtension(format string) string {
	switch format {
	case "markdown":
		return "md"
	case "text":
		return "txt"
	default:
		return format
	}
}

func runExport(opts exportOpts) error {
	cfg, err := loadCLIConfig(opts.configPath)
	if err != nil {
		return err
	}
	st, kv, err := openStore(cfg, opts.storePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	sp, err := st.Get(opts.id)
	if err != nil {
		return err
	}
	p := &sp.Prediction

	cat := loadCatalog(cfg, opts.catalogPath)
	perf := performanceInfo(p, cat)

	var content string
	switch opts.format {
	case "json":
		content, err = transfer.ExportJSON(p)
	case "csv":
		content, err = transfer.ExportCSV(p)
	case "text":
		content = transfer.ExportText(p, perf, opts.author, cat.SongTitle)
	case "markdown":
		content = transfer.ExportMarkdown(p, perf, opts.author, cat.SongTitle)
	default:
		return fmt.Errorf("unknown export format %q (want json, csv, text, or markdown)", opts.format)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", opts.format, err)
	}

	out := opts.outPath
	if out == "" {
		out = transfer.Filename(p.Name, exportExtension(opts.format), time.Now())
	}
	if out == "-" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("Exported %s to %s\n", opts.id, out)
	return nil
}

// performanceInfo builds export header context from the catalog entry or
// the prediction's custom event.
func performanceInfo(p *setlist.Prediction, cat *catalog.Catalog) *transfer.PerformanceInfo {
	if p.CustomPerformance != nil {
		return &transfer.PerformanceInfo{
			Name:  p.CustomPerformance.Name,
			Venue: p.CustomPerformance.Venue,
			Date:  p.CustomPerformance.Date,
		}
	}
	if p.PerformanceID == "" {
		return nil
	}
	perf, ok := cat.Performance(p.PerformanceID)
	if !ok {
		return &transfer.PerformanceInfo{Name: p.PerformanceID}
	}
	return &transfer.PerformanceInfo{Name: perf.Name, Venue: perf.Venue, Date: perf.Date}
}
