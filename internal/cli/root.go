// Package cli implements the taskboard command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/app"
	"github.com/nhle/taskboard/internal/logging"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/store"
	boardsync "github.com/nhle/taskboard/internal/sync"
	"github.com/nhle/taskboard/internal/theme"
)

// Version is set at build time.
var Version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dbPath     string
	jsonOutput bool
}

// env is what a command needs once config is loaded and the store is open.
type env struct {
	cfg    *model.AppConfig
	store  *store.SQLiteStore
	logger *log.Logger
	stdout io.Writer
	json   bool
}

func (e *env) Close() error {
	return e.store.Close()
}

func (e *env) toggler() *theme.Toggler {
	return theme.NewToggler(e.store, theme.ParseMode(e.cfg.Display.Theme), e.logger)
}

func (e *env) filter() search.Filter {
	return search.Filter{Mode: search.ParseMode(e.cfg.Search.Mode)}
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadConfig reads the config file and applies flag overrides.
func (o *globalOptions) loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	return cfg, nil
}

// open loads config and opens the store, logging to logOut.
func (o *globalOptions) open(stdout, logOut io.Writer) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := openStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		store:  s,
		logger: logging.FromConfig(logOut, cfg.Log),
		stdout: stdout,
		json:   o.jsonOutput,
	}, nil
}

// openStore opens the database, creating its directory first.
func openStore(path string) (*store.SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	return s, nil
}

// NewRootCmd creates the root command with injectable IO.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:     "taskboard",
		Short:   "A kanban board with checklists, due badges, search and themes",
		Long:    "taskboard runs a terminal kanban board. Subcommands script the same board from the shell or serve it over HTTP.",
		Version: Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", model.DefaultConfigPath(), "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides db_path)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	cmd.AddCommand(newBoardCmd(stdout, stderr, opts))
	cmd.AddCommand(newListCmd(stdout, stderr, opts))
	cmd.AddCommand(newCardCmd(stdout, stderr, opts))
	cmd.AddCommand(newChecklistCmd(stdout, stderr, opts))
	cmd.AddCommand(newDueCmd(stdout, opts))
	cmd.AddCommand(newSearchCmd(stdout, stderr, opts))
	cmd.AddCommand(newThemeCmd(stdout, stderr, opts))
	cmd.AddCommand(newSeedCmd(stdout, stderr, opts))
	cmd.AddCommand(newServeCmd(stdout, stderr, opts))
	cmd.AddCommand(newConfigCmd(stdout, opts))

	return cmd
}

// runTUI starts the terminal UI. Logs go to the configured file because
// bubbletea owns the terminal.
func runTUI(ctx context.Context, opts *globalOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := logging.OpenFile(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	toggler := theme.NewToggler(s, theme.ParseMode(cfg.Display.Theme), logger)
	toggler.Load(ctx)

	var poller *boardsync.Poller
	if cfg.Sync.PollIntervalSec > 0 {
		poller = boardsync.New(s, time.Duration(cfg.Sync.PollIntervalSec)*time.Second, logger)
		defer poller.Stop()
	}

	m := app.New(app.Options{
		Store:      s,
		Poller:     poller,
		Toggler:    toggler,
		Filter:     search.Filter{Mode: search.ParseMode(cfg.Search.Mode)},
		Logger:     logger,
		Config:     cfg,
		ConfigPath: opts.configPath,
	})

	logger.Info("starting terminal UI", "db", cfg.DBPath, "theme", toggler.Mode())
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
