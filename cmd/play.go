package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/app"
	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/config"
	"github.com/abhisek/logiq/internal/events"
	"github.com/abhisek/logiq/internal/progress"
	"github.com/abhisek/logiq/internal/session"
	"github.com/abhisek/logiq/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start solving puzzles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, restores progress and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	cat, err := catalog.NewEmbedded()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	kv := st.KV()
	blob, _, err := kv.Read(cmd.Context(), store.ProgressKey)
	if err != nil {
		// Unreadable progress degrades to a fresh profile.
		fmt.Fprintln(os.Stderr, "warning: could not read saved progress:", err)
		blob = nil
	}
	state := progress.Load(blob, cat.Chambers())

	controller := session.New(cat, state, events.StoreSink{Repo: st.EventRepo()})

	save := func() error {
		state.LastSaved = time.Now()
		out, err := progress.Serialize(state)
		if err != nil {
			return err
		}
		return kv.Write(context.Background(), store.ProgressKey, out)
	}

	return app.Run(app.Options{
		Controller: controller,
		Catalog:    cat,
		Save:       save,
	})
}
