package mirror

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnasheralneam/scrcpy-wireless/internal/adb"
	"github.com/hnasheralneam/scrcpy-wireless/internal/config"
)

// callLog records the order of coordinator side effects.
type callLog struct {
	calls []string
}

type fakeLister struct {
	log *callLog
	// devices returned per successive call; the last entry repeats.
	responses [][]adb.Device
	err       error
	n         int
}

func (f *fakeLister) Devices() ([]adb.Device, error) {
	f.log.calls = append(f.log.calls, "devices")
	if f.err != nil {
		return nil, f.err
	}
	i := f.n
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.n++
	return f.responses[i], nil
}

type fakeLauncher struct {
	log  *callLog
	code int
}

func (f *fakeLauncher) Run(m config.MirrorConfig) (int, error) {
	f.log.calls = append(f.log.calls, "scrcpy")
	return f.code, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.PollInterval = config.Duration(time.Millisecond)
	cfg.PollDeadline = config.Duration(10 * time.Millisecond)
	return cfg
}

func newCoordinator(log *callLog, lister *fakeLister, helperErr error) *Coordinator {
	return &Coordinator{
		ADB: lister,
		Helper: func(ctx context.Context) error {
			log.calls = append(log.calls, "helper")
			return helperErr
		},
		Scrcpy: &fakeLauncher{log: log},
		Config: testConfig(),
	}
}

func helperCount(log *callLog) int {
	n := 0
	for _, c := range log.calls {
		if c == "helper" {
			n++
		}
	}
	return n
}

func TestDeviceAlreadyConnectedSkipsHelper(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, responses: [][]adb.Device{
		{{Serial: "1234ABCD", State: "device"}},
	}}
	c := newCoordinator(log, lister, nil)

	code, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Equal(t, 0, helperCount(log))
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1], "mirroring must run last")
}

func TestNoDevicesRunsHelperOnce(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, responses: [][]adb.Device{
		nil, // initial check: empty list
		{{Serial: "192.168.1.42:5555", State: "device"}}, // after helper
	}}
	c := newCoordinator(log, lister, nil)

	code, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Equal(t, 1, helperCount(log))
	// Helper runs before the readiness poll, scrcpy after everything.
	assert.Equal(t, "helper", log.calls[1])
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1])
}

func TestUnauthorizedDeviceRunsHelper(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, responses: [][]adb.Device{
		{{Serial: "1234ABCD", State: "unauthorized"}},
	}}
	c := newCoordinator(log, lister, nil)

	_, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, helperCount(log))
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1])
}

func TestHelperFailureStillLaunchesMirroring(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, responses: [][]adb.Device{nil}}
	c := newCoordinator(log, lister, fmt.Errorf("no device found"))

	code, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, 1, helperCount(log))
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1])
}

func TestDeviceListErrorTreatedAsNoDevice(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, err: fmt.Errorf("adb devices: exit status 1")}
	c := newCoordinator(log, lister, nil)

	_, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, helperCount(log))
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1])
}

func TestWaitReadyGivesUpAtDeadline(t *testing.T) {
	log := &callLog{}
	// Device never comes up.
	lister := &fakeLister{log: log, responses: [][]adb.Device{
		{{Serial: "192.168.1.42:5555", State: "offline"}},
	}}
	c := newCoordinator(log, lister, nil)

	start := time.Now()
	_, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "scrcpy", log.calls[len(log.calls)-1], "mirroring runs even if the device never settles")
}

func TestExitCodePropagated(t *testing.T) {
	log := &callLog{}
	lister := &fakeLister{log: log, responses: [][]adb.Device{
		{{Serial: "1234ABCD", State: "device"}},
	}}
	c := &Coordinator{
		ADB:    lister,
		Helper: func(ctx context.Context) error { return nil },
		Scrcpy: &fakeLauncher{log: log, code: 2},
		Config: testConfig(),
	}

	code, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, code)
}
