package adb

// ConnectionType indicates how a device is connected.
type ConnectionType string

const (
	USB     ConnectionType = "usb"
	WiFi    ConnectionType = "wifi"
	Unknown ConnectionType = "unknown"
)

// Device represents a device visible to the ADB server.
type Device struct {
	Serial      string
	State       string // "device", "offline", "unauthorized", etc.
	ConnType    ConnectionType
	Model       string
	Product     string
	TransportID string
}

// IsOnline returns true if the device is in "device" state (authorized and ready).
func (d Device) IsOnline() bool {
	return d.State == "device"
}

// AnyOnline reports whether any device in the list is authorized and ready.
func AnyOnline(devices []Device) bool {
	for _, d := range devices {
		if d.IsOnline() {
			return true
		}
	}
	return false
}
