package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cylitris/internal/config"
	"github.com/vovakirdan/cylitris/internal/core"
	"github.com/vovakirdan/cylitris/internal/games/cylinder"
	"github.com/vovakirdan/cylitris/internal/platform/tui"
	"github.com/vovakirdan/cylitris/internal/registry"
	"github.com/vovakirdan/cylitris/internal/storage"
)

var (
	flagConfig string
	flagSpeed  string
	flagView   string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play cylitris",
	Long: `Start a run of the given mode (default: cylinder).

Controls:
  Left/Right, A/D   - Move (wraps around the cylinder)
  Up, W, X          - Rotate
  Down, S (hold)    - Soft drop
  Space             - Hard drop
  Tab, V            - Switch cylinder/unrolled view
  P, Esc            - Pause (Esc again to leave)
  R                 - Restart
  Q, Ctrl+C         - Quit

Speed options:
  slow   - 800ms per row
  normal - 500ms per row
  fast   - 250ms per row
  fixed  - Use the config file's fall_interval_ms

Examples:
  cylitris play
  cylitris play cylinder_unrolled
  cylitris play --speed fast --seed 42
  cylitris play --view unrolled
  cylitris play --config ./my-cylinder.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: "+speedNames())
	playCmd.Flags().StringVar(&flagView, "view", "", "Starting view: cylinder or unrolled")
}

func speedNames() string {
	names := make([]string, len(config.SpeedPresets))
	for i, p := range config.SpeedPresets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// applyGameFlags validates the play flags and hands them to the game
// package before any game is created.
func applyGameFlags() error {
	speed, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return err
	}

	switch flagView {
	case "", config.ViewCylinder, config.ViewUnrolled:
	default:
		return fmt.Errorf("invalid --view %q: want %s or %s", flagView, config.ViewCylinder, config.ViewUnrolled)
	}

	// Surface config errors here; inside the TUI they would only fall
	// back to defaults.
	if flagConfig != "" {
		if _, err := config.LoadCylinder(flagConfig); err != nil {
			return err
		}
	}

	cylinder.SetConfigPath(flagConfig)
	cylinder.SetSpeedPreset(speed)
	cylinder.SetView(flagView)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and
// the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run journal. Failure is not fatal: the game
// still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := cylinder.IDCylinder
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cylitris list' to see available modes.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer := mustLogger(io.Discard)
	defer closer.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
