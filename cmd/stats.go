package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/events"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile and activity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _, st, err := loadState(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		fmt.Printf("Level %d  (%d/%d XP)\n", state.User.Level, state.User.XP, state.User.XPToNextLevel)
		fmt.Printf("Puzzles solved: %d\n", state.User.TotalSolved)
		fmt.Printf("Current streak: %d\n", state.User.CurrentStreak)
		fmt.Printf("Chambers unlocked: %d/%d\n", state.ChambersUnlocked, len(state.Chambers))
		if !state.LastSaved.IsZero() {
			fmt.Printf("Last saved: %s\n", state.LastSaved.Format("2006-01-02 15:04"))
		}

		counts, err := st.EventRepo().CountByName(cmd.Context())
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		if len(counts) == 0 {
			return nil
		}

		fmt.Println("\nActivity:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		names := []string{
			events.PuzzleStarted,
			events.PuzzleCompleted,
			events.PuzzleAttemptFailed,
			events.HintUsed,
			events.LevelUp,
		}
		for _, name := range names {
			if n, ok := counts[name]; ok {
				fmt.Fprintf(w, "  %s\t%d\n", name, n)
			}
		}
		return w.Flush()
	},
}
