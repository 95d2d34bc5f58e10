package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/transfer"
)

func newImportCmd() *cobra.Command {
	var (
		configPath string
		storePath  string
		format     string
		activate   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a prediction from a JSON or CSV file",
		Long: `Imports a prediction exported by setscore (or a compatible tool) and
saves it to the local store. The format is inferred from the file
extension unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], format, configPath, storePath, activate)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to the prediction store database")
	cmd.Flags().StringVar(&format, "format", "", "Input format: json or csv (default: by extension)")
	cmd.Flags().BoolVar(&activate, "activate", false, "Mark the imported prediction as active")

	return cmd
}

func runImport(path, format, configPath, storePath string, activate bool) error {
	text, err := readInput(path)
	if err != nil {
		return err
	}

	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		default:
			format = "json"
		}
	}

	var result transfer.ImportResult
	switch format {
	case "json":
		result = transfer.ImportJSON(text)
	case "csv":
		result = transfer.ImportCSV(text)
	default:
		return fmt.Errorf("unknown import format %q (want json or csv)", format)
	}
	if !result.Success {
		return fmt.Errorf("import failed:\n  %s", strings.Join(result.Errors, "\n  "))
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		return err
	}
	st, kv, err := openStore(cfg, storePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := st.Save(store.SavedPrediction{Prediction: *result.Prediction}); err != nil {
		return fmt.Errorf("saving imported prediction: %w", err)
	}
	if activate {
		if err := st.SetActive(result.Prediction.ID); err != nil {
			return fmt.Errorf("activating imported prediction: %w", err)
		}
	}

	fmt.Printf("Imported %q as %s (%d songs)\n",
		result.Prediction.Name, result.Prediction.ID, result.Prediction.Setlist.CountSongs())
	return nil
}
