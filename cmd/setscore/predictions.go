package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/config"
)

func newPredictionsCmd() *cobra.Command {
	var (
		configPath string
		storePath  string
	)

	cmd := &cobra.Command{
		Use:     "predictions",
		Aliases: []string{"preds"},
		Short:   "Manage saved predictions",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the prediction store database")

	open := func() (*config.Config, *store.PredictionStore, *store.SQLite, error) {
		cfg, err := loadCLIConfig(configPath)
		if err != nil {
			return nil, nil, nil, err
		}
		st, kv, err := openStore(cfg, storePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return cfg, st, kv, nil
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved predictions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			return runPredictionsList(cfg, st)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one prediction as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			return runPredictionsShow(st, args[0])
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prediction and detach it from slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			if _, err := st.Get(args[0]); err != nil {
				return err
			}
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	activate := &cobra.Command{
		Use:   "activate <id>",
		Short: "Mark a prediction as the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			if _, err := st.Get(args[0]); err != nil {
				return err
			}
			if err := st.SetActive(args[0]); err != nil {
				return err
			}
			fmt.Printf("Active prediction: %s\n", args[0])
			return nil
		},
	}

	favorite := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a prediction's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			sp, err := st.Get(args[0])
			if err != nil {
				return err
			}
			sp.Prediction.SetFavorite(!sp.Prediction.IsFavorite)
			if err := st.Save(*sp); err != nil {
				return err
			}
			fmt.Printf("%s favorite=%v\n", args[0], sp.Prediction.IsFavorite)
			return nil
		},
	}

	cmd.AddCommand(list, show, del, activate, favorite)
	return cmd
}

func runPredictionsList(cfg *config.Config, st *store.PredictionStore) error {
	saved, err := st.List()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Println("No saved predictions.")
		return nil
	}
	activeID, _ := st.ActiveID()
	cat := loadCatalog(cfg, "")

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Event", "Songs", "Score", "Flags"})
	for i := range saved {
		sp := &saved[i]
		p := &sp.Prediction

		event := p.EventName()
		if p.PerformanceID != "" {
			event = cat.PerformanceName(p.PerformanceID)
		}
		score := "-"
		if sp.Score != nil {
			score = fmt.Sprintf("%.1f%%", sp.Score.Accuracy)
		}
		flags := ""
		if p.IsFavorite {
			flags += "*"
		}
		if p.ID == activeID {
			flags += "A"
		}
		tw.AppendRow(table.Row{p.ID, p.Name, event, p.Setlist.CountSongs(), score, flags})
	}
	tw.Render()
	return nil
}

func runPredictionsShow(st *store.PredictionStore, id string) error {
	sp, err := st.Get(id)
	if err != nil {
		return err
	}
	out, err := marshalIndent(sp)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
