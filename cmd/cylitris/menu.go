package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cylitris/internal/platform/tui"
	"github.com/vovakirdan/cylitris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start cylitris in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab to
browse the run journal. Leaving a run returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Run journal
  Q            - Quit

Examples:
  cylitris menu
  cylitris menu --fps 30
  cylitris menu --speed fast
  cylitris menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	// The play settings apply to every run started from the menu.
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	menuCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: "+speedNames())
	menuCmd.Flags().StringVar(&flagView, "view", "", "Starting view: cylinder or unrolled")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer := mustLogger(io.Discard)
	defer closer.Close()

	store := openStore()
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRunBoard {
			goBack, rbErr := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
			if rbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from run board
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fixed --seed replays the same piece order every time
		runCfg := cfg
		if flagSeed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, runCfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
