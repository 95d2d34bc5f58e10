package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setscore/setscore/pkg/setlist"
	"github.com/setscore/setscore/pkg/transfer"
)

func newParseCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Preview how an actual setlist text will be interpreted",
		Long: `Parses a setlist report (numbered song lines, MC markers, section
dividers) and prints the recognized items without scoring anything.
Useful for checking a paste before running score.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], outputFmt)
		},
	}
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runParse(path, outputFmt string) error {
	text, err := readInput(path)
	if err != nil {
		return err
	}
	items := transfer.ParseActualSetlist(text)

	if outputFmt == "json" {
		sl := &setlist.Setlist{Items: items}
		for i, it := range items {
			it.Meta().Position = i
		}
		sl.TotalSongs = sl.CountSongs()
		out, err := marshalIndent(sl)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	songs := 0
	for i, it := range items {
		switch v := it.(type) {
		case *setlist.SongItem:
			songs++
			fmt.Printf("%2d. song   %s\n", i+1, v.DisplayName())
		case *setlist.BreakItem:
			kind := string(v.Kind())
			if v.IsDivider() {
				kind = "divider"
			}
			fmt.Printf("%2d. %-6s %s\n", i+1, kind, v.Title)
		}
	}
	fmt.Printf("\n%d item(s), %d song(s)\n", len(items), songs)
	return nil
}
