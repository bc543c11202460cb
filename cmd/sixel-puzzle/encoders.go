package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerch/sixel-puzzle/internal/raster"
)

var encodersCmd = &cobra.Command{
	Use:   "encoders",
	Short: "List the supported sixel encoders",
	Long:  `Shows the registered encoder backends and whether each is installed.`,
	Args:  cobra.NoArgs,
	Run:   runEncoders,
}

func runEncoders(cmd *cobra.Command, args []string) {
	names := raster.List()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "Name", "Installed", "Command")
	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "----", "---------", "-------")

	for _, name := range names {
		b, err := raster.Lookup(name)
		if err != nil {
			continue
		}
		installed := "no"
		if _, err := exec.LookPath(b.Command); err == nil {
			installed = "yes"
		}
		fmt.Printf("  %-*s  %-9s  %s %s\n", maxNameLen, name, installed, b.Command, strings.Join(b.Args, " "))
	}

	fmt.Println()
	fmt.Println("Select one with --encoder <name> or encoder.backend in the config.")
}
