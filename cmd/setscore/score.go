package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/surface"
	"github.com/setscore/setscore/pkg/transfer"
)

func newScoreCmd() *cobra.Command {
	var (
		predictionID string
		actualPath   string
		configPath   string
		storePath    string
		catalogPath  string
		outputFmt    string
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a prediction against the actual setlist",
		Long: `Reads the actual setlist (a text report, one numbered song per line),
matches it against a saved prediction, and prints the score report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(scoreOpts{
				predictionID: predictionID,
				actualPath:   actualPath,
				configPath:   configPath,
				storePath:    storePath,
				catalogPath:  catalogPath,
				outputFmt:    outputFmt,
				save:         save,
			})
		},
	}

	cmd.Flags().StringVar(&predictionID, "prediction", "", "Prediction ID (default: the active prediction)")
	cmd.Flags().StringVar(&actualPath, "actual", "", "Path to the actual setlist text, or - for stdin (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to the prediction store database")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the song catalog file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&save, "save", true, "Persist the score alongside the prediction")
	_ = cmd.MarkFlagRequired("actual")

	return cmd
}

type scoreOpts struct {
	predictionID string
	actualPath   string
	configPath   string
	storePath    string
	catalogPath  string
	outputFmt    string
	save         bool
}

func runScore(opts scoreOpts) error {
	renderer, err := newRenderer(opts.outputFmt)
	if err != nil {
		return err
	}

	cfg, err := loadCLIConfig(opts.configPath)
	if err != nil {
		return err
	}

	st, kv, err := openStore(cfg, opts.storePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	id := opts.predictionID
	if id == "" {
		id, err = st.ActiveID()
		if err != nil {
			return fmt.Errorf("resolving active prediction: %w", err)
		}
		if id == "" {
			return fmt.Errorf("no active prediction; pass --prediction or activate one")
		}
	}

	sp, err := st.Get(id)
	if err != nil {
		return fmt.Errorf("loading prediction: %w", err)
	}

	text, err := readInput(opts.actualPath)
	if err != nil {
		return err
	}
	actual := transfer.ParseActualSetlistAsSetlist(text, sp.Prediction.PerformanceID)
	if actual.CountSongs() == 0 {
		return fmt.Errorf("no songs recognized in %s", opts.actualPath)
	}

	result, err := scoring.Score(&sp.Prediction.Setlist, actual, cfg.Scoring)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	if opts.save {
		sp.Score = result
		sp.Prediction.UpdatedAt = time.Now().UTC()
		if err := st.Save(*sp); err != nil {
			return fmt.Errorf("saving score: %w", err)
		}
	}

	cat := loadCatalog(cfg, opts.catalogPath)
	perfName := ""
	if sp.Prediction.PerformanceID != "" {
		perfName = cat.PerformanceName(sp.Prediction.PerformanceID)
	} else if sp.Prediction.CustomPerformance != nil {
		perfName = sp.Prediction.CustomPerformance.Name
	}
	report := surface.BuildReport(&sp.Prediction, perfName, result, cat.SongTitle)
	return renderer.Render(os.Stdout, report)
}
