package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeviceList(t *testing.T) {
	out := `List of devices attached
1234ABCD               device usb:1-2 product:hollywood model:Quest_2 transport_id:1
192.168.1.42:5555      device product:hollywood model:Quest_2 transport_id:2
EFGH5678               unauthorized transport_id:3

`
	devices := parseDeviceList(out)
	require.Len(t, devices, 3)

	assert.Equal(t, "1234ABCD", devices[0].Serial)
	assert.Equal(t, "device", devices[0].State)
	assert.Equal(t, USB, devices[0].ConnType)
	assert.Equal(t, "Quest_2", devices[0].Model)
	assert.True(t, devices[0].IsOnline())

	assert.Equal(t, "192.168.1.42:5555", devices[1].Serial)
	assert.Equal(t, WiFi, devices[1].ConnType)
	assert.Equal(t, "2", devices[1].TransportID)

	assert.Equal(t, "unauthorized", devices[2].State)
	assert.False(t, devices[2].IsOnline())
}

func TestParseDeviceListShortFormat(t *testing.T) {
	// `adb devices` without -l has no key:value fields.
	devices := parseDeviceList("List of devices attached\n1234ABCD\tdevice\n")
	require.Len(t, devices, 1)
	assert.Equal(t, "1234ABCD", devices[0].Serial)
	assert.True(t, devices[0].IsOnline())
}

func TestParseDeviceListEmpty(t *testing.T) {
	assert.Empty(t, parseDeviceList("List of devices attached\n"))
	assert.Empty(t, parseDeviceList(""))
}

func TestAnyOnline(t *testing.T) {
	assert.False(t, AnyOnline(nil))
	assert.False(t, AnyOnline([]Device{{Serial: "X", State: "unauthorized"}}))
	assert.False(t, AnyOnline([]Device{{Serial: "X", State: "offline"}}))
	assert.True(t, AnyOnline([]Device{
		{Serial: "X", State: "offline"},
		{Serial: "Y", State: "device"},
	}))
}

func TestParseRouteIP(t *testing.T) {
	out := "192.168.1.0/24 dev wlan0 proto kernel scope link src 192.168.1.42\n"
	assert.Equal(t, "192.168.1.42", parseRouteIP(out))
	assert.Equal(t, "", parseRouteIP("no routes\n"))
}
