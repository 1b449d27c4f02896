package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config values read and write as "1s" or
// "500ms" rather than raw nanosecond integers.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	// Bare integers are taken as nanoseconds, the form older config files
	// were written with.
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// ScanConfig controls the wireless connect sweep.
type ScanConfig struct {
	Workers      int      `yaml:"workers"`
	ProbeTimeout Duration `yaml:"probe_timeout"`
}

// MirrorConfig holds the scrcpy launch profile.
type MirrorConfig struct {
	StayAwake        bool     `yaml:"stay_awake"`
	TurnScreenOff    bool     `yaml:"turn_screen_off"`
	ScreenOffTimeout int      `yaml:"screen_off_timeout"` // seconds
	PowerOffOnClose  bool     `yaml:"power_off_on_close"`
	ExtraArgs        []string `yaml:"extra_args,omitempty"`
}

// DeviceConfig stores per-device settings.
type DeviceConfig struct {
	Nickname string `yaml:"nickname,omitempty"`
	WiFiIP   string `yaml:"wifi_ip,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	ADBPort       int                     `yaml:"adb_port"`
	HelperCommand string                  `yaml:"helper_command,omitempty"`
	PollInterval  Duration                `yaml:"poll_interval"`
	PollDeadline  Duration                `yaml:"poll_deadline"`
	Scan          ScanConfig              `yaml:"scan"`
	Mirror        MirrorConfig            `yaml:"mirror"`
	Devices       map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ADBPort:      5555,
		PollInterval: Duration(100 * time.Millisecond),
		PollDeadline: Duration(5 * time.Second),
		Scan: ScanConfig{
			Workers:      50,
			ProbeTimeout: Duration(time.Second),
		},
		Mirror: MirrorConfig{
			StayAwake:        true,
			TurnScreenOff:    true,
			ScreenOffTimeout: 600,
			PowerOffOnClose:  true,
		},
		Devices: make(map[string]DeviceConfig),
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scrcpy-wireless")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "scrcpy-wireless")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := ConfigPath()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// KnownAddrs returns the configured WiFi addresses of known devices, with the
// ADB port appended. These are tried before any network sweep.
func (c *Config) KnownAddrs() []string {
	var addrs []string
	for _, dc := range c.Devices {
		if dc.WiFiIP != "" {
			addrs = append(addrs, fmt.Sprintf("%s:%d", dc.WiFiIP, c.ADBPort))
		}
	}
	return addrs
}
