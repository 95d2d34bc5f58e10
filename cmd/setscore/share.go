package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/share"
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Encode predictions as share links and decode them back",
	}
	cmd.AddCommand(newShareEncodeCmd(), newShareDecodeCmd())
	return cmd
}

func newShareEncodeCmd() *cobra.Command {
	var (
		configPath string
		storePath  string
		baseURL    string
		rawData    bool
	)

	cmd := &cobra.Command{
		Use:   "encode <id>",
		Short: "Produce a share URL for a saved prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(configPath)
			if err != nil {
				return err
			}
			st, kv, err := openStore(cfg, storePath)
			if err != nil {
				return err
			}
			defer kv.Close()

			sp, err := st.Get(args[0])
			if err != nil {
				return err
			}
			if !share.CanShare(&sp.Prediction) {
				return fmt.Errorf("prediction %s is too large to fit in a share link", args[0])
			}

			if rawData {
				data, err := share.Compress(&sp.Prediction)
				if err != nil {
					return err
				}
				fmt.Println(data)
				return nil
			}

			base := firstNonEmpty(baseURL, cfg.Share.BaseURL)
			url, err := share.ShareURL(&sp.Prediction, base)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to the prediction store database")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Share URL base (default from config)")
	cmd.Flags().BoolVar(&rawData, "data-only", false, "Print only the compressed payload, not a full URL")

	return cmd
}

func newShareDecodeCmd() *cobra.Command {
	var (
		configPath string
		storePath  string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "decode <url-or-data>",
		Short: "Decode a share link back into a prediction",
		Long: `Decodes a share URL (or a bare payload string) and prints the embedded
prediction. With --save the decoded prediction is stored as a new copy
with fresh ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareDecode(args[0], configPath, storePath, save)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&storePath, "store", "", "Path to the prediction store database")
	cmd.Flags().BoolVar(&save, "save", false, "Save the decoded prediction to the store")

	return cmd
}

func runShareDecode(input, configPath, storePath string, save bool) error {
	p, err := share.ParseShareURL(input)
	if err != nil {
		// Not a URL; try the input as a bare payload.
		p, err = share.Decompress(input)
	}
	if err != nil {
		return fmt.Errorf("decoding share link: %w", err)
	}

	if save {
		cfg, err := loadCLIConfig(configPath)
		if err != nil {
			return err
		}
		st, kv, err := openStore(cfg, storePath)
		if err != nil {
			return err
		}
		defer kv.Close()
		if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
			return fmt.Errorf("saving decoded prediction: %w", err)
		}
		fmt.Printf("Saved %q as %s\n", p.Name, p.ID)
		return nil
	}

	out, err := marshalIndent(p)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
