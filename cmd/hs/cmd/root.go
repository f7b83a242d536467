package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/config"
	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/errutil"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hs",
	Short: "Help Scout helpdesk CLI",
	Long: `hs is a command-line front end to the Help Scout helpdesk API.

It manages conversations, customers, mailboxes, tags, workflows, users,
teams, and saved replies, and can serve the same data to AI assistants
over the Model Context Protocol (hs mcp).

Credentials come from 'hs auth login' or the HELPSCOUT_APP_ID and
HELPSCOUT_APP_SECRET environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		// Load config (--home is passed through so it influences
		// where config.toml is loaded from, like HSCLI_HOME).
		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Ensure home directory exists on first use
		if err := cfg.EnsureHomeDir(); err != nil {
			return fmt.Errorf("create data directory %s: %w", cfg.HomeDir, err)
		}

		return nil
	},
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newSession builds the credential store and auth session from config.
func newSession() (*helpscout.Session, credstore.Store) {
	store := credstore.NewFileStore(cfg.CredentialsPath())
	session := helpscout.NewSession(store, cfg.API.TokenURL,
		helpscout.WithSessionLogger(logger))
	return session, store
}

// newClient builds an API client on top of a fresh session.
func newClient() (*helpscout.Client, credstore.Store) {
	session, store := newSession()
	client := helpscout.NewClient(cfg.API.BaseURL, session,
		helpscout.WithLogger(logger))
	return client, store
}

// resolveMailbox prefers the explicit flag value over the stored default
// mailbox. Empty means unscoped.
func resolveMailbox(flagValue string, store credstore.Store) string {
	if flagValue != "" {
		return flagValue
	}
	v, _ := store.Get(credstore.FieldDefaultMailbox)
	return v
}

// parseID parses a positive numeric ID argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, errutil.NewCLIError("invalid %s ID %q", kind, arg)
	}
	return id, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.hscli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "home directory (overrides HSCLI_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
