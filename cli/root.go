// ABOUTME: Root cobra command, shared flags and store wiring for the CLI
// ABOUTME: Loads config, builds the logger and opens the configured backend before each command
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harperreed/activator/activation"
	"github.com/harperreed/activator/config"
	"github.com/harperreed/activator/db"
	"github.com/harperreed/activator/kvstore"
	"github.com/harperreed/activator/logging"
	"github.com/harperreed/activator/seed"
	"github.com/harperreed/activator/store"
)

const Version = "0.1.0"

// skipStore marks commands that run without opening a store.
const skipStore = "skip-store"

// App holds state shared by every subcommand of one invocation.
type App struct {
	configPath string
	backend    string
	dbPath     string
	asJSON     bool

	cfg    config.Config
	logger *zap.Logger
	store  *store.Store
	svc    *activation.Service
}

func New() *App {
	return &App{}
}

// Execute runs the CLI with os.Args and releases the store afterwards.
func Execute(ctx context.Context) error {
	app := New()
	defer func() { _ = app.Close() }()
	return app.Command().ExecuteContext(ctx)
}

// Command builds the full command tree bound to this App.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "activator",
		Short:         "Plan and run brand activations",
		Long:          "activator tracks venues, budgets, product inventory, staff and stakeholders for brand activations.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipStore] == "true" {
				return nil
			}
			return a.open(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/activator/config.yaml)")
	flags.StringVar(&a.backend, "backend", "", "Storage backend: memory, sqlite or badger")
	flags.StringVar(&a.dbPath, "db-path", "", "Database file or directory for the backend")
	flags.BoolVar(&a.asJSON, "json", false, "Print results as JSON")

	root.AddCommand(
		a.activationCommand(),
		a.venueCommand(),
		a.budgetCommand(),
		a.productCommand(),
		a.stakeholderCommand(),
		a.documentCommand(),
		a.personnelCommand(),
		a.leadCommand(),
		a.issueCommand(),
		a.reportCommand(),
		a.seedCommand(),
		a.dashboardCommand(),
		a.graphCommand(),
		a.serveCommand(),
		a.mcpCommand(),
		a.tuiCommand(),
		a.configCommand(),
	)
	return root
}

// Close flushes the logger and closes the store if one was opened.
func (a *App) Close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *App) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if a.backend != "" {
		cfg.Backend = a.backend
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	return cfg, cfg.Validate()
}

func (a *App) open(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger

	st, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	a.store = st
	a.svc = activation.New(st, activation.WithLogger(logger))

	if cfg.Seed {
		return a.seedIfEmpty(ctx)
	}
	return nil
}

func (a *App) seedIfEmpty(ctx context.Context) error {
	existing, err := a.svc.ListActivations(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	demo, err := seed.Demo(ctx, a.svc, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	a.logger.Info("seeded demo activation", zap.String("id", demo.ID.String()))
	return nil
}

// OpenStore opens the backend named by cfg.
func OpenStore(cfg config.Config) (*store.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendSQLite:
		backend, err := db.Open(cfg.StoragePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store.New(backend), nil
	case config.BackendBadger:
		backend, err := kvstore.Open(cfg.StoragePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return store.New(backend), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// styled reports whether w is a terminal that should get lipgloss styling.
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v as JSON when --json is set, otherwise calls human.
func (a *App) emit(cmd *cobra.Command, v any, human func(w io.Writer) error) error {
	w := cmd.OutOrStdout()
	if a.asJSON {
		return writeJSON(w, v)
	}
	return human(w)
}
