package cmd

import (
	"fmt"

	"github.com/hnasheralneam/scrcpy-wireless/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage scrcpy-wireless configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Config file: %s\n\n", config.ConfigPath())
		fmt.Printf("ADB port: %d\n", cfg.ADBPort)
		if cfg.HelperCommand != "" {
			fmt.Printf("Helper command: %s\n", cfg.HelperCommand)
		} else {
			fmt.Println("Helper command: (built-in network sweep)")
		}
		fmt.Printf("Scan: %d workers, %s probe timeout\n", cfg.Scan.Workers, cfg.Scan.ProbeTimeout)
		fmt.Printf("Mirror profile:\n")
		fmt.Printf("  stay_awake: %v\n", cfg.Mirror.StayAwake)
		fmt.Printf("  turn_screen_off: %v\n", cfg.Mirror.TurnScreenOff)
		fmt.Printf("  screen_off_timeout: %ds\n", cfg.Mirror.ScreenOffTimeout)
		fmt.Printf("  power_off_on_close: %v\n", cfg.Mirror.PowerOffOnClose)
		if len(cfg.Mirror.ExtraArgs) > 0 {
			fmt.Printf("  extra_args: %v\n", cfg.Mirror.ExtraArgs)
		}
		fmt.Printf("\nDevices:\n")
		if len(cfg.Devices) == 0 {
			fmt.Println("  (none configured)")
		}
		for serial, dc := range cfg.Devices {
			fmt.Printf("  - %s", serial)
			if dc.Nickname != "" {
				fmt.Printf(" (%s)", dc.Nickname)
			}
			if dc.WiFiIP != "" {
				fmt.Printf(" [wifi: %s]", dc.WiFiIP)
			}
			fmt.Println()
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Config created at %s\n", config.ConfigPath())
		return nil
	},
}

var configNicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Set a nickname for a device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial := args[0]
		name := args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dc := cfg.Devices[serial]
		dc.Nickname = name
		cfg.Devices[serial] = dc
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Set nickname for %s: %s\n", serial, name)
		return nil
	},
}

var configSetWiFiCmd = &cobra.Command{
	Use:   "set-wifi <serial> <ip>",
	Short: "Set WiFi IP for a device (tried before scanning)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serial := args[0]
		ip := args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dc := cfg.Devices[serial]
		dc.WiFiIP = ip
		cfg.Devices[serial] = dc
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("Set WiFi IP for %s: %s\n", serial, ip)
		return nil
	},
}

var configSetHelperCmd = &cobra.Command{
	Use:   "set-helper <command>",
	Short: "Use an external helper command instead of the built-in sweep",
	Long: `The helper is invoked with no arguments when no device is connected.
Its output and exit status are ignored; the device list is polled afterwards.
Pass an empty string to go back to the built-in sweep.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.HelperCommand = args[0]
		if err := config.Save(cfg); err != nil {
			return err
		}
		if cfg.HelperCommand == "" {
			fmt.Println("Helper command cleared; using built-in sweep.")
		} else {
			fmt.Printf("Helper command set: %s\n", cfg.HelperCommand)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configNicknameCmd)
	configCmd.AddCommand(configSetWiFiCmd)
	configCmd.AddCommand(configSetHelperCmd)
	rootCmd.AddCommand(configCmd)
}
