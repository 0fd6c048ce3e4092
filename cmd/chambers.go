package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/catalog"
	"github.com/abhisek/logiq/internal/config"
	"github.com/abhisek/logiq/internal/progress"
	"github.com/abhisek/logiq/internal/store"
)

var chambersCmd = &cobra.Command{
	Use:   "chambers",
	Short: "List chambers and their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, cat, st, err := loadState(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CHAMBER\tSTATUS\tSOLVED\tACCURACY\tHINTS")
		for _, def := range cat.Chambers() {
			ch := state.Chamber(def.ID)
			if ch == nil {
				continue
			}
			status := "open"
			if !ch.Unlocked {
				status = fmt.Sprintf("locked (lv %d)", ch.UnlockLevel)
			} else if ch.Progress.Completed >= ch.PuzzleCount {
				status = "complete"
			}
			fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d%%\t%d\n",
				def.Name,
				status,
				ch.Progress.Completed,
				ch.PuzzleCount,
				ch.Progress.AccuracyPercent,
				ch.Progress.HintsUsedTotal,
			)
		}
		return w.Flush()
	},
}

// loadState opens the store and restores the progress state for
// read-only commands. The caller must Close the returned store.
func loadState(cmd *cobra.Command) (*progress.State, catalog.Provider, *store.Store, error) {
	cfg := config.Load()
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}

	cat, err := catalog.NewEmbedded()
	if err != nil {
		st.Close()
		return nil, nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	blob, _, err := st.KV().Read(cmd.Context(), store.ProgressKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not read saved progress:", err)
		blob = nil
	}

	return progress.Load(blob, cat.Chambers()), cat, st, nil
}
