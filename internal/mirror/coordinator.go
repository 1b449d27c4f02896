package mirror

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
)

// DeviceLister queries current device connectivity. Satisfied by adb.Client.
type DeviceLister interface {
	Devices() ([]adb.Device, error)
}

// Launcher starts the mirroring session. Satisfied by scrcpy.Client.
type Launcher interface {
	Run(m config.MirrorConfig) (int, error)
}

// Coordinator runs the connect-then-mirror flow: check for an authorized
// device, run the wireless-connect helper if none is attached, wait for the
// connection to settle, then launch the mirroring session.
type Coordinator struct {
	ADB    DeviceLister
	Helper func(ctx context.Context) error
	Scrcpy Launcher
	Config *config.Config
}

// Run executes the flow and returns the mirroring tool's exit code.
func (c *Coordinator) Run(ctx context.Context) (int, error) {
	if c.deviceReady() {
		fmt.Println("Device already connected.")
	} else {
		if err := c.Helper(ctx); err != nil {
			// The helper's failure is not fatal: scrcpy reports the missing
			// device far more precisely than we could.
			fmt.Fprintf(os.Stderr, "Warning: wireless connect failed: %v\n", err)
		}
		c.waitReady(ctx)
	}
	return c.Scrcpy.Run(c.Config.Mirror)
}

// deviceReady reports whether any authorized device is currently attached.
// A failing device query counts as "no device" so the helper gets its chance.
func (c *Coordinator) deviceReady() bool {
	devices, err := c.ADB.Devices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return false
	}
	return adb.AnyOnline(devices)
}

// waitReady polls the device list until a device is authorized or the
// deadline passes. A newly connected device can take a moment to move from
// "offline" to "device"; if it never does, scrcpy will say so.
func (c *Coordinator) waitReady(ctx context.Context) {
	deadline := time.Now().Add(time.Duration(c.Config.PollDeadline))
	for {
		if c.deviceReady() {
			return
		}
		if time.Now().After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Duration(c.Config.PollInterval)):
		}
	}
}
