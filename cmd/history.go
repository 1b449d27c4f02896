package cmd

import (
	"fmt"

	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
	"github.com/hnasheralneam/scrcpy-wireless/internal/history"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past wireless connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()

		conns, err := db.List(historyLimit)
		if err != nil {
			return err
		}
		if len(conns) == 0 {
			fmt.Println("No wireless connections recorded yet.")
			return nil
		}

		for _, c := range conns {
			model := c.Model
			if model == "" {
				model = "unknown model"
			}
			fmt.Printf("%-22s %-20s %s  (%d connects, last %s)\n",
				c.Address, c.Serial, model, c.ConnectCount,
				c.LastConnectedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var historyForgetCmd = &cobra.Command{
	Use:   "forget <serial>",
	Short: "Remove a device from the connection history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := history.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer db.Close()

		n, err := db.Forget(args[0])
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Printf("No history for %s.\n", args[0])
		} else {
			fmt.Printf("Forgot %d address(es) for %s.\n", n, args[0])
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum entries to show")
	historyCmd.AddCommand(historyForgetCmd)
	rootCmd.AddCommand(historyCmd)
}
