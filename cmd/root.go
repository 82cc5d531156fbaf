package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpreston/factdrill/internal/app"
	"github.com/mpreston/factdrill/internal/config"
	"github.com/mpreston/factdrill/internal/store"
	"github.com/mpreston/factdrill/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "factdrill",
	Short: "Multiplication drill for kids",
	Long:  "Factdrill is a terminal drill that helps kids master the multiplication facts from 0x0 to 10x10.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FACTDRILL_DB env var and config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then FACTDRILL_DB / the XDG default.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return "", err
	}
	if cfg.Drill.DBPath != nil && *cfg.Drill.DBPath != "" {
		return *cfg.Drill.DBPath, nil
	}
	return store.DefaultDBPath()
}

// openStore resolves the path and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// applyConfigTheme switches the startup palette when the config names a
// valid one. Entering a profile applies that profile's theme on top.
func applyConfigTheme() {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return
	}
	if cfg.Drill.Theme != nil && theme.Valid(*cfg.Drill.Theme) {
		theme.Apply(*cfg.Drill.Theme)
	}
}

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	applyConfigTheme()
	return app.Run(st)
}
