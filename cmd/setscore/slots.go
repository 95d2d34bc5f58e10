package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/setscore/setscore/internal/store"
)

func newSlotsCmd() *cobra.Command {
	var (
		configPath string
		storePath  string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage per-performance save slots",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the prediction store database")

	open := func() (*store.PredictionStore, *store.SQLite, error) {
		cfg, err := loadCLIConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		return openStore(cfg, storePath)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List save slots and their predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()

			slots, err := st.Slots()
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Println("No save slots assigned.")
				return nil
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"Slot", "Performance", "Predictions"})
			for _, s := range slots {
				tw.AppendRow(table.Row{s.Slot, s.PerformanceID, strings.Join(s.PredictionIDs, ", ")})
			}
			tw.Render()
			return nil
		},
	}

	assign := &cobra.Command{
		Use:   "assign <slot> <prediction-id>",
		Short: "Assign a prediction to a slot for its performance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("slot must be a number: %w", err)
			}
			st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()

			sp, err := st.Get(args[1])
			if err != nil {
				return err
			}
			if err := st.AssignSlot(slot, sp.Prediction.PerformanceID, sp.Prediction.ID); err != nil {
				return err
			}
			fmt.Printf("Assigned %s to slot %d\n", args[1], slot)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear <slot>",
		Short: "Clear a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("slot must be a number: %w", err)
			}
			st, kv, err := open()
			if err != nil {
				return err
			}
			defer kv.Close()
			if err := st.ClearSlot(slot); err != nil {
				return err
			}
			fmt.Printf("Cleared slot %d\n", slot)
			return nil
		},
	}

	cmd.AddCommand(list, assign, clear)
	return cmd
}
