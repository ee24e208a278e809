package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tessro/termspot/internal/config"
	errs "github.com/tessro/termspot/internal/errors"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg     *config.Config
	logger  *log.Logger
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "termspot",
	Short: "Control Spotify from an interactive prompt",
	Long: `termspot is an interactive Spotify controller for the terminal.

Run it without a subcommand to start a session, then type 'help' for the
list of commands.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
	RunE:          runSession,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.termspotrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func initLogger() error {
	w := io.Writer(os.Stderr)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		logFile = f
	}

	var err error
	logger, err = newLogger(w, cfg.Log.Level, verbose)
	return err
}

// newLogger creates a logger at level. verbose forces debug.
func newLogger(w io.Writer, level string, verbose bool) (*log.Logger, error) {
	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})

	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}
	l.SetLevel(lvl)

	return l, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// reportError prints err once, with a suggestion when one applies.
func reportError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, errs.Format(err))
}
