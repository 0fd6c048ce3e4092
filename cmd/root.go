package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/config"
	"github.com/abhisek/logiq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "logiq",
	Short: "Terminal logic-puzzle trainer",
	Long:  "Logiq — solve chambers of logic, pattern and spatial puzzles, earn XP, unlock deeper chambers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LOGIQ_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(chambersCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LOGIQ_DB / .env, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
