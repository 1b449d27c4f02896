package cmd

import (
	"fmt"
	"os"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
	"github.com/hnasheralneam/scrcpy-wireless/internal/history"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices known to adb and their connection state",
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

		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}

		lastSeen := deviceHistory(config.ConfigDir())

		for _, d := range devices {
			nickname := ""
			if dc, ok := cfg.Devices[d.Serial]; ok && dc.Nickname != "" {
				nickname = fmt.Sprintf(" (%s)", dc.Nickname)
			}

			status := d.State
			if !d.IsOnline() {
				status = "OFFLINE"
			}

			fmt.Printf("%-20s %s  [%s] [%s]%s\n",
				d.Serial, d.Model, d.ConnType, status, nickname)

			if c, ok := lastSeen[d.Serial]; ok {
				fmt.Printf("  Wireless connects: %d | Last: %s at %s\n",
					c.ConnectCount, c.Address, c.LastConnectedAt.Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}

// deviceHistory returns the most recent recorded connection per serial. The
// stats only decorate the listing, so an unavailable history DB degrades to
// an empty map with a warning.
func deviceHistory(configDir string) map[string]history.Connection {
	db, err := history.Open(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return nil
	}
	defer db.Close()

	past, err := db.List(100)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read history: %v\n", err)
		return nil
	}
	lastSeen := make(map[string]history.Connection)
	for _, c := range past {
		if _, ok := lastSeen[c.Serial]; !ok {
			lastSeen[c.Serial] = c
		}
	}
	return lastSeen
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
