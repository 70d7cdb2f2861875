// Package cli implements the mathverse command line: offline question
// generation, terminal practice and progress inspection against the same
// store the server uses.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/mathverse/internal/config"
	"github.com/vytor/mathverse/internal/logger"
	"github.com/vytor/mathverse/internal/models"
	"github.com/vytor/mathverse/internal/storage"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mathverse",
		Short:         "Math games for young learners",
		Long:          "mathverse generates practice questions and inspects player progress from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("store", "", "Store backend: sqlite or file (overrides STORE)")
	root.PersistentFlags().String("db", "", "Path to SQLite database (overrides DB_PATH)")
	root.PersistentFlags().String("data-file", "", "Path to JSON progress file (overrides DATA_FILE)")
	root.PersistentFlags().String("user", models.LocalUserID, "User ID whose progress is read or written")
	root.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newAnalyticsCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newResetCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// resolveConfig loads the environment configuration and applies flag overrides.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("data-file"); v != "" {
		cfg.DataFile = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the configured store with logging routed to stderr.
func openStore(cmd *cobra.Command) (*storage.Storage, error) {
	level := logger.WARN
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = logger.DEBUG
	}
	logger.SetDefault(logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithLevel(level)))

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	s, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}

func userID(cmd *cobra.Command) string {
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		return v
	}
	return models.LocalUserID
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
