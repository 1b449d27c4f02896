package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
	"github.com/hnasheralneam/scrcpy-wireless/internal/mirror"
	"github.com/hnasheralneam/scrcpy-wireless/internal/scrcpy"

	"github.com/spf13/cobra"
)

// Version of scrcpy-wireless.
const Version = "1.1.0"

var rootCmd = &cobra.Command{
	Use:     "scrcpy-wireless",
	Short:   "Mirror an Android device over WiFi with one command",
	Version: Version,
	Long: `scrcpy-wireless checks whether a device is already attached to adb,
establishes a wireless connection if not, then launches scrcpy with a
screen-off mirroring profile.`,
	PreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMirror()
	},
}

// runMirror executes the connect-then-mirror flow and exits with scrcpy's
// exit code, so failures of the mirroring session propagate to the shell.
func runMirror() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	coordinator := &mirror.Coordinator{
		ADB:    adb.NewClient(),
		Helper: wirelessHelper(cfg),
		Scrcpy: scrcpy.NewClient(),
		Config: cfg,
	}

	code, err := coordinator.Run(context.Background())
	if err != nil {
		return err
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
