package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/logiq/internal/config"
	"github.com/abhisek/logiq/internal/selfupdate"
)

// version is stamped at release time via -ldflags "-X ...cmd.version=v1.2.3".
var version = "(devel)"

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the logiq version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("logiq", version)
		if !versionCheck {
			return nil
		}
		if !config.Load().CheckUpdates {
			fmt.Println("update checks are disabled (LOGIQ_CHECK_UPDATES=false)")
			return nil
		}

		checker := selfupdate.New("abhisek", "logiq")
		res, err := checker.Check(cmd.Context(), version)
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("development build, skipping update check")
			return nil
		}
		if err != nil {
			// The check is best-effort; a flaky network is not an error.
			fmt.Println("could not check for updates:", err)
			return nil
		}

		if res.UpdateAvailable {
			fmt.Printf("update available: %s -> %s\n", res.CurrentVersion, res.LatestVersion)
		} else {
			fmt.Println("you are on the latest version")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}
