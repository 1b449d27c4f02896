package adb

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"
)

// Client wraps ADB command-line calls.
type Client struct{}

// NewClient creates a new ADB client.
func NewClient() *Client {
	return &Client{}
}

// Devices returns all devices known to the ADB server.
func (c *Client) Devices() ([]Device, error) {
	out, err := exec.Command("adb", "devices", "-l").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w\n%s", err, out)
	}
	return parseDeviceList(string(out)), nil
}

// Connect connects to a wireless ADB device at ip:port.
func (c *Client) Connect(ip string, port int) error {
	addr := fmt.Sprintf("%s:%d", ip, port)
	out, err := exec.Command("adb", "connect", addr).CombinedOutput()
	if err != nil {
		return fmt.Errorf("adb connect %s: %w\n%s", addr, err, out)
	}
	output := string(out)
	// adb connect exits 0 even on failure; the output is the only signal.
	if strings.Contains(output, "connected") {
		return nil
	}
	return fmt.Errorf("adb connect %s: %s", addr, strings.TrimSpace(output))
}

// Disconnect drops a wireless connection. addr may be empty to drop all.
func (c *Client) Disconnect(addr string) error {
	args := []string{"disconnect"}
	if addr != "" {
		args = append(args, addr)
	}
	out, err := exec.Command("adb", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("adb disconnect %s: %w\n%s", addr, err, out)
	}
	return nil
}

// TCPIP restarts adbd on a USB-attached device listening on the given TCP port.
func (c *Client) TCPIP(serial string, port int) error {
	out, err := exec.Command("adb", "-s", serial, "tcpip", fmt.Sprint(port)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("adb tcpip %d: %w\n%s", port, err, out)
	}
	return nil
}

// DeviceIP asks a connected device for its WLAN IP address. Returns an empty
// string if the device has no route up.
func (c *Client) DeviceIP(serial string) (string, error) {
	out, err := exec.Command("adb", "-s", serial, "shell", "ip", "route").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("adb shell ip route: %w\n%s", err, out)
	}
	return parseRouteIP(string(out)), nil
}

// parseDeviceList parses `adb devices -l` output.
func parseDeviceList(output string) []Device {
	var devices []Device
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "List of") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{
			Serial: fields[0],
			State:  fields[1],
		}
		// Determine connection type
		if strings.Contains(d.Serial, ":") {
			d.ConnType = WiFi
		} else {
			d.ConnType = USB
		}
		// Parse key:value pairs
		for _, f := range fields[2:] {
			parts := strings.SplitN(f, ":", 2)
			if len(parts) != 2 {
				continue
			}
			switch parts[0] {
			case "model":
				d.Model = parts[1]
			case "product":
				d.Product = parts[1]
			case "transport_id":
				d.TransportID = parts[1]
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// parseRouteIP extracts the source address from `ip route` output, e.g.
// "192.168.1.0/24 dev wlan0 proto kernel scope link src 192.168.1.42".
func parseRouteIP(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		for i, f := range fields {
			if f == "src" && i+1 < len(fields) {
				return fields[i+1]
			}
		}
	}
	return ""
}
