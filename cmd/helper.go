package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
	"github.com/hnasheralneam/scrcpy-wireless/internal/history"
	"github.com/hnasheralneam/scrcpy-wireless/internal/scan"
)

// wirelessHelper returns the connect function for the coordinator: a
// user-configured external helper command if one is set, otherwise the
// built-in network sweep.
func wirelessHelper(cfg *config.Config) func(ctx context.Context) error {
	if cfg.HelperCommand != "" {
		return func(ctx context.Context) error {
			// Contract with external helpers: no arguments, exit status
			// ignored. Output goes to the terminal so the user sees it.
			parts := strings.Fields(cfg.HelperCommand)
			if len(parts) == 0 {
				return nil
			}
			helper := exec.CommandContext(ctx, parts[0], parts[1:]...)
			helper.Stdout = os.Stdout
			helper.Stderr = os.Stderr
			helper.Run()
			return nil
		}
	}
	return func(ctx context.Context) error {
		return connectWireless(ctx, cfg)
	}
}

// connectWireless runs the built-in helper: try addresses we have connected
// to before, then sweep the local network for a host accepting the ADB port.
func connectWireless(ctx context.Context, cfg *config.Config) error {
	adbClient := adb.NewClient()
	scanner := &scan.Scanner{
		ADB:          adbClient,
		Port:         cfg.ADBPort,
		Workers:      cfg.Scan.Workers,
		ProbeTimeout: time.Duration(cfg.Scan.ProbeTimeout),
	}

	db, err := history.Open(config.ConfigDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		db = nil
	} else {
		defer db.Close()
	}

	known := cfg.KnownAddrs()
	if db != nil {
		if recent, err := db.RecentAddrs(10); err == nil {
			known = append(recent, known...)
		}
	}

	result := scanner.TryKnown(ctx, known)
	if result == nil {
		result, err = scanner.Sweep(ctx)
		if err != nil {
			return err
		}
	}
	fmt.Printf("Connected to %s\n", result.Addr)

	recordConnection(adbClient, cfg, db, result)
	return nil
}

// recordConnection looks the connected device up in the device list and
// saves the connection under its serial. Best effort.
func recordConnection(adbClient *adb.Client, cfg *config.Config, db *history.DB, result *scan.Result) {
	devices, err := adbClient.Devices()
	if err != nil {
		return
	}
	for _, d := range devices {
		if d.Serial != result.Addr {
			continue
		}
		saveConnection(cfg, db, d.Serial, result.IP, cfg.ADBPort, d.Model)
		return
	}
}

// saveConnection records a wireless connection in the history DB and the
// per-device config, so the next run skips the sweep. History rows are keyed
// by serial so `history forget <serial>` matches them regardless of which
// path created them.
func saveConnection(cfg *config.Config, db *history.DB, serial, ip string, port int, model string) {
	if db != nil {
		if err := db.RecordConnection(serial, fmt.Sprintf("%s:%d", ip, port), model); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record connection: %v\n", err)
		}
	}
	dc := cfg.Devices[serial]
	dc.WiFiIP = ip
	cfg.Devices[serial] = dc
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}
}
