// cylitris is a falling-block puzzle played on the surface of a cylinder.
//
// Usage:
//
//	cylitris list              - List available modes
//	cylitris play [mode]       - Play (default: cylinder)
//	cylitris menu              - Pick a mode interactively
//	cylitris runs <mode>       - Show the run journal for a mode
//	cylitris serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible piece order
//	--db <path>           - Set run journal path (default: ~/.cylitris/runs.db)
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/cylitris/internal/games/cylinder"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cylitris",
	Short: "Cylitris - falling blocks around a cylinder",
	Long: `Cylitris is a falling-block puzzle whose playfield wraps around a
cylinder: pieces slide off one edge and come back on the other.

Available commands:
  list     - Show the available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  runs     - View the run journal
  serve    - Start SSH server for remote play

Examples:
  cylitris play
  cylitris play cylinder_unrolled --speed fast
  cylitris menu
  cylitris runs cylinder
  cylitris serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cylitris/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded by default while playing)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the logger for a command. Without --log-file it
// writes to fallback; the full-screen commands pass io.Discard because
// the terminal belongs to the game. The returned closer is never nil.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = fallback
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		if dir := filepath.Dir(flagLogFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cylitris",
		Level:           level,
	})
	return logger, closer, nil
}

// mustLogger is newLogger for command handlers: it exits on error.
func mustLogger(fallback io.Writer) (*log.Logger, io.Closer) {
	logger, closer, err := newLogger(fallback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closer
}
