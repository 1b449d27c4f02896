package scrcpy

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
)

// Client wraps scrcpy command-line calls.
type Client struct{}

// NewClient creates a new scrcpy client.
func NewClient() *Client {
	return &Client{}
}

// Args builds the scrcpy argument list for a mirroring profile. The -e flag
// selects the device connected over TCP/IP rather than USB.
func Args(m config.MirrorConfig) []string {
	args := []string{"-e"}
	if m.StayAwake {
		args = append(args, "--stay-awake")
	}
	if m.TurnScreenOff {
		args = append(args, "--turn-screen-off")
	}
	if m.ScreenOffTimeout > 0 {
		args = append(args, fmt.Sprintf("--screen-off-timeout=%d", m.ScreenOffTimeout))
	}
	if m.PowerOffOnClose {
		args = append(args, "--power-off-on-close")
	}
	args = append(args, m.ExtraArgs...)
	return args
}

// Run launches scrcpy with the given profile and blocks until the mirroring
// session ends. The child inherits stdio so scrcpy's own output and errors go
// straight to the terminal. Returns scrcpy's exit code.
func (c *Client) Run(m config.MirrorConfig) (int, error) {
	cmd := exec.Command("scrcpy", Args(m)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("scrcpy: %w", err)
	}
	return 0, nil
}
