package cmd

import (
	"fmt"
	"os"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
	"github.com/hnasheralneam/scrcpy-wireless/internal/history"

	"github.com/spf13/cobra"
)

var tcpipCmd = &cobra.Command{
	Use:   "tcpip [serial]",
	Short: "Switch a USB-attached device to wireless ADB",
	Long: `Restarts adbd on a USB-attached device in TCP/IP mode, asks the device
for its WLAN address, and connects to it. After this the USB cable can be
unplugged. With multiple USB devices attached, pass the serial to use.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		adbClient := adb.NewClient()
		devices, err := adbClient.Devices()
		if err != nil {
			return err
		}

		var target *adb.Device
		for i, d := range devices {
			if d.ConnType != adb.USB || !d.IsOnline() {
				continue
			}
			if len(args) > 0 && d.Serial != args[0] {
				continue
			}
			if target != nil {
				return fmt.Errorf("multiple USB devices attached — pass a serial")
			}
			target = &devices[i]
		}
		if target == nil {
			return fmt.Errorf("no online USB device found")
		}

		ip, err := adbClient.DeviceIP(target.Serial)
		if err != nil {
			return err
		}
		if ip == "" {
			return fmt.Errorf("device %s has no WLAN address — is WiFi on?", target.Serial)
		}

		fmt.Printf("Restarting adbd on %s in TCP/IP mode (port %d)...\n", target.Serial, cfg.ADBPort)
		if err := adbClient.TCPIP(target.Serial, cfg.ADBPort); err != nil {
			return err
		}
		if err := adbClient.Connect(ip, cfg.ADBPort); err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", ip, cfg.ADBPort)
		fmt.Printf("Connected to %s — the USB cable can be unplugged.\n", addr)

		db, err := history.Open(config.ConfigDir())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
			db = nil
		} else {
			defer db.Close()
		}
		saveConnection(cfg, db, target.Serial, ip, cfg.ADBPort, target.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tcpipCmd)
}
