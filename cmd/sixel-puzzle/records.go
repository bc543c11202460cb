package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jerch/sixel-puzzle/internal/config"
	"github.com/jerch/sixel-puzzle/internal/platform/tui"
	"github.com/jerch/sixel-puzzle/internal/storage"
)

var flagRecordsLevel int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show the best solves",
	Long: `Display the fewest-move solves recorded for each level.

On a terminal the records open in an interactive view; switch levels with
left/right or tab. Otherwise the top 10 of a level are printed.

Examples:
  sixel-puzzle records
  sixel-puzzle records --level 5
  sixel-puzzle records --level 3 | less`,
	Args: cobra.NoArgs,
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLevel, "level", 0, "Level to show first (0 = smallest solved level)")
}

func runRecords(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadPuzzle(flagConfig)
	if err != nil {
		return err
	}
	path := firstNonEmpty(flagDBPath, cfg.Storage.Path, config.UserPath("records.db"))
	if path == "" {
		return fmt.Errorf("no records database: home directory is unavailable, use --db")
	}

	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return tui.RunRecords(store, flagRecordsLevel, w, h)
	}
	return printRecords(store, flagRecordsLevel)
}

// printRecords writes a plain table for non-terminal output.
func printRecords(store *storage.Store, level int) error {
	if level == 0 {
		stats, err := store.Stats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No solves recorded yet.")
			fmt.Println()
			fmt.Println("Run 'sixel-puzzle <image>' and finish a puzzle to set the first record!")
			return nil
		}
		level = stats[0].Level
	}

	records, err := store.TopSolves(level, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Solves - %dx%d\n", level, level)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No solves recorded for this level yet.")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-8s  %-16s  %s\n", "Rank", "Moves", "Time", "Date", "Image")
	fmt.Printf("  %-4s  %-6s  %-8s  %-16s  %s\n", "----", "-----", "----", "----", "-----")

	for i, r := range records {
		fmt.Printf("  %-4d  %-6d  %-8s  %-16s  %s\n",
			i+1, r.Moves, tui.FormatDuration(r.Duration), r.CreatedAt.Local().Format("2006-01-02 15:04"), filepath.Base(r.Image))
	}
	return nil
}
