// Package cmd implements the command-line interface for the helix-runner application.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joncrangle/helix-runner/internal/config"
	"github.com/joncrangle/helix-runner/internal/input"
	"github.com/joncrangle/helix-runner/internal/launcher"
	"github.com/joncrangle/helix-runner/internal/macro"
	"github.com/joncrangle/helix-runner/internal/runner"
	"github.com/joncrangle/helix-runner/internal/window"
)

const version = "0.1.0"

// flags holds the per-invocation arguments. Persistent tunables live in config.Config.
type flags struct {
	cfgFile string

	execute string
	wait    float64
	title   string
	process string
	project string
	file    string
	line    int
	column  int

	relative  bool
	list      bool
	all       bool
	wsl       bool
	clipboard bool
}

func (f *flags) validate() error {
	if f.wait < 0 {
		return fmt.Errorf("wait must not be negative, got %v", f.wait)
	}
	if f.line < 0 || f.column < 0 {
		return fmt.Errorf("line and column must not be negative, got %d:%d", f.line, f.column)
	}
	return nil
}

func (f *flags) options(cfg *config.Config) runner.Options {
	return runner.Options{
		Query:          window.Query{Title: f.title, ProcessName: f.process},
		IncludeIME:     f.all,
		List:           f.list,
		Execute:        f.execute,
		ExecuteWait:    time.Duration(f.wait * float64(time.Second)),
		Project:        f.project,
		File:           f.file,
		Line:           f.line,
		Column:         f.column,
		Relative:       f.relative,
		WSL:            f.wsl,
		Clipboard:      f.clipboard,
		SettleDelay:    cfg.GetSettleDelay(),
		ChangeDirDelay: cfg.GetChangeDirDelay(),
	}
}

// NewRootCmd builds the helix-runner command tree. Each call has its own
// flag values and viper instance.
func NewRootCmd() *cobra.Command {
	f := &flags{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "helix-runner",
		Short: "Focus a Helix window and open a file in it",
		Long: `Helix-Runner finds a running Helix editor window by title or process name,
brings it to the foreground and types the commands that open a file at a
given line and column. If no window matches it can launch one first.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v, f.cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.validate(); err != nil {
				return fmt.Errorf("❌ %w", err)
			}

			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("❌ %w", err)
			}
			logger := config.InitLogger(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			r := newRunner(cfg, logger, cmd.OutOrStdout())
			if err := r.Run(ctx, f.options(cfg)); err != nil {
				if errors.Is(err, input.ErrClipboardNotRestored) {
					yellow := color.New(color.FgYellow)
					yellow.Fprintln(cmd.ErrOrStderr(), "⚠️  Clipboard content could not be restored")
				}
				return fmt.Errorf("❌ %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&f.execute, "execute", "e", "", "Command to run when no window matches")
	rootCmd.Flags().Float64VarP(&f.wait, "wait", "w", 0, "Seconds to wait after --execute before focusing again")
	rootCmd.Flags().StringVarP(&f.title, "title", "t", "", "Match windows whose title contains this string")
	rootCmd.Flags().StringVarP(&f.process, "process", "n", "", "Match windows whose process name contains this string")
	rootCmd.Flags().StringVarP(&f.project, "project", "p", "", "Project path to cd into after launching")
	rootCmd.Flags().StringVarP(&f.file, "file", "f", "", "File to open")
	rootCmd.Flags().IntVarP(&f.line, "line", "l", 0, "Line to jump to (0-based)")
	rootCmd.Flags().IntVarP(&f.column, "column", "c", 0, "Column to jump to (0-based)")
	rootCmd.Flags().BoolVarP(&f.relative, "relative", "r", false, "Strip the project path from the file path")
	rootCmd.Flags().BoolVar(&f.list, "list", false, "List windows as [process] title")
	rootCmd.Flags().BoolVar(&f.all, "all", false, "Include IME helper windows")
	rootCmd.Flags().BoolVar(&f.wsl, "wsl", false, "Translate Windows paths to /mnt/<drive>/... paths")
	rootCmd.Flags().BoolVar(&f.clipboard, "clipboard", false, "Paste commands through the clipboard instead of typing them")

	rootCmd.PersistentFlags().StringVar(&f.cfgFile, "config", "", "Config file (default locations: $XDG_CONFIG_HOME/helix-runner/config.yaml or ~/.config/helix-runner/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug logging to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")

	// Bind errors only occur for a nil flag.
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for helix-runner",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "helix-runner version %s\n", version)
			fmt.Fprintln(cmd.OutOrStdout(), "Jump into Helix from anywhere")
		},
	}
}

// initConfig reads the config file and HELIX_RUNNER_* environment variables into v.
func initConfig(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "helix-runner"))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			v.AddConfigPath(filepath.Join(home, ".config", "helix-runner"))
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("❌ failed to read config: %w", err)
		}
	}
	return nil
}

func newRunner(cfg *config.Config, logger *slog.Logger, out io.Writer) *runner.Runner {
	dir := window.NewDirectory(logger)
	dir.BufferSize = cfg.BufferSize

	kb := input.NewKeyboard()
	swap := input.NewSwapper(input.NewClipboard(), kb, logger)
	swap.Attempts = cfg.ClipboardAttempts
	swap.PasteDelay = cfg.GetPasteDelay()

	return runner.New(
		dir,
		window.NewFocuser(logger, cfg.FocusAttempts),
		launcher.New(logger),
		macro.NewEditor(input.NewInjector(kb, swap), logger),
		out,
		logger,
	)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
