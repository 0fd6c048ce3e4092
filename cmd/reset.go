package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/config"
	"github.com/abhisek/logiq/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all saved progress and the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to erase progress without --yes")
		}

		cfg := config.Load()
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.KV().Delete(cmd.Context(), store.ProgressKey); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := st.EventRepo().Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purge events: %w", err)
		}

		fmt.Println("Progress erased. A fresh profile starts on the next run.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm erasing all progress")
}
