// sixel-puzzle is a sliding-tile picture puzzle drawn with sixel graphics
// in the terminal.
//
// Usage:
//
//	sixel-puzzle <image> [level]   - Play with the picture cut into level×level tiles
//	sixel-puzzle records           - Show the best solves per level
//	sixel-puzzle encoders          - List the supported sixel encoders
//
// Global flags:
//
//	--config <path>  - Use a custom config YAML
//	--db <path>      - Set database path (default: ~/.sixel-puzzle/records.db)
//	--log <path>     - Write the log to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagLog    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sixel-puzzle <image> [level]",
	Short: "Sliding-tile picture puzzle for sixel terminals",
	Long: `sixel-puzzle cuts a picture into a grid of tiles, removes one and
shuffles the rest. Slide the tiles back into place to restore the picture.

The terminal must support sixel graphics with at least 256 colors, and an
encoder (img2sixel or ImageMagick) must be installed.

Controls:
  Arrows        - Select a tile
  Shift+Arrows  - Slide the selected tile toward the gap
  Space         - Slide the selected tile in whichever direction works
  P             - Toggle the complete picture (Esc also closes it)
  Q/Ctrl+C      - Quit

Examples:
  sixel-puzzle cat.png
  sixel-puzzle cat.png 5
  sixel-puzzle cat.jpg 3 --encoder magick --seed 42
  sixel-puzzle records --level 3`,
	Args:          cobra.MatchAll(cobra.RangeArgs(1, 2), validLevelArg),
	RunE:          runPlay,
	SilenceErrors: true, // printed by main
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (default ~/.sixel-puzzle/records.db)")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "Write the log to this file")

	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(encodersCmd)
}
