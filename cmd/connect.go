package cmd

import (
	"context"
	"fmt"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"

	"github.com/spf13/cobra"
)

var connectIP string

var connectCmd = &cobra.Command{
	Use:               "connect",
	Short:             "Establish a wireless ADB connection without mirroring",
	PersistentPreRunE: requireDeps(),
	Long: `Finds a device with wireless debugging enabled on the local network
and connects adb to it. Previously used addresses are tried first, then the
whole subnet is swept. Use --ip to skip the scan entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if connectIP != "" {
			if err := adb.NewClient().Connect(connectIP, cfg.ADBPort); err != nil {
				return err
			}
			fmt.Printf("Connected to %s:%d\n", connectIP, cfg.ADBPort)
			return nil
		}

		return connectWireless(context.Background(), cfg)
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect [address]",
	Short: "Drop wireless ADB connections",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := ""
		if len(args) > 0 {
			addr = args[0]
		}
		if err := adb.NewClient().Disconnect(addr); err != nil {
			return err
		}
		if addr != "" {
			fmt.Printf("Disconnected %s\n", addr)
		} else {
			fmt.Println("Disconnected all wireless devices.")
		}
		return nil
	},
}

func init() {
	connectCmd.Flags().StringVar(&connectIP, "ip", "", "Connect to this IP directly instead of scanning")
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}
