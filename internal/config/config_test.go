package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5555, cfg.ADBPort)
	assert.Equal(t, 50, cfg.Scan.Workers)
	assert.Equal(t, Duration(100*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, 600, cfg.Mirror.ScreenOffTimeout)
	assert.True(t, cfg.Mirror.StayAwake)
	assert.True(t, cfg.Mirror.TurnScreenOff)
	assert.True(t, cfg.Mirror.PowerOffOnClose)
	assert.Empty(t, cfg.HelperCommand)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.ADBPort = 5556
	cfg.HelperCommand = "/usr/local/bin/adb-helper"
	cfg.Scan.ProbeTimeout = Duration(3 * time.Second)
	cfg.Devices["1234ABCD"] = DeviceConfig{Nickname: "quest", WiFiIP: "192.168.1.42"}
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5556, loaded.ADBPort)
	assert.Equal(t, Duration(3*time.Second), loaded.Scan.ProbeTimeout)
	assert.Equal(t, "/usr/local/bin/adb-helper", loaded.HelperCommand)
	assert.Equal(t, "quest", loaded.Devices["1234ABCD"].Nickname)
	assert.Equal(t, "192.168.1.42", loaded.Devices["1234ABCD"].WiFiIP)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "scrcpy-wireless")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "config.yaml"),
		[]byte("adb_port: 5557\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5557, cfg.ADBPort)
	// Unset fields fall back to defaults.
	assert.Equal(t, 50, cfg.Scan.Workers)
	assert.Equal(t, 600, cfg.Mirror.ScreenOffTimeout)
}

func TestDurationsWriteHumanReadable(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, Save(DefaultConfig()))

	data, err := os.ReadFile(ConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll_interval: 100ms")
	assert.Contains(t, string(data), "poll_deadline: 5s")
	assert.Contains(t, string(data), "probe_timeout: 1s")
}

func TestDurationsParseHumanReadable(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "scrcpy-wireless")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "config.yaml"),
		[]byte("poll_interval: 250ms\nscan:\n  probe_timeout: 2s\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(250*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, Duration(2*time.Second), cfg.Scan.ProbeTimeout)
	// Untouched duration keeps its default.
	assert.Equal(t, Duration(5*time.Second), cfg.PollDeadline)
}

func TestDurationsParseNanosecondIntegers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "scrcpy-wireless")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "config.yaml"),
		[]byte("poll_interval: 1000000000\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Duration(time.Second), cfg.PollInterval)
}

func TestDurationRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "scrcpy-wireless")
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "config.yaml"),
		[]byte("poll_interval: soon\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse duration")
}

func TestKnownAddrs(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.KnownAddrs())

	cfg.Devices["A"] = DeviceConfig{WiFiIP: "192.168.1.42"}
	cfg.Devices["B"] = DeviceConfig{Nickname: "usb-only"}
	addrs := cfg.KnownAddrs()
	require.Len(t, addrs, 1)
	assert.Equal(t, "192.168.1.42:5555", addrs[0])
}
