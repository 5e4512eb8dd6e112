package protocol

import (
	"fmt"
	"strings"

	"liveshellwave/internal/modem"
)

// ConnectionType selects the network interface the device configures
type ConnectionType int

const (
	ConnectionEthernet ConnectionType = iota
	ConnectionWiFi
)

// String returns the connection name used on the command line
func (c ConnectionType) String() string {
	switch c {
	case ConnectionEthernet:
		return "ethernet"
	case ConnectionWiFi:
		return "wifi"
	default:
		return fmt.Sprintf("ConnectionType(%d)", int(c))
	}
}

// ParseConnectionType parses "ethernet" or "wifi" (empty selects ethernet)
func ParseConnectionType(s string) (ConnectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ethernet", "ether", "lan":
		return ConnectionEthernet, nil
	case "wifi", "wlan", "wi-fi":
		return ConnectionWiFi, nil
	default:
		return ConnectionEthernet, fmt.Errorf("unknown connection type %q", s)
	}
}

// Encryption is the WiFi security scheme
type Encryption string

// Supported WiFi encryption schemes. An empty scheme is treated as WPA.
const (
	EncryptionWPA       Encryption = "WPA"
	EncryptionWEPOpen   Encryption = "WEP_Open"
	EncryptionWEPShared Encryption = "WEP_Shared"
	EncryptionNone      Encryption = "None"
)

// ParseEncryption parses a scheme name case-insensitively
func ParseEncryption(s string) (Encryption, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EncryptionWPA, nil
	}
	for _, e := range []Encryption{EncryptionWPA, EncryptionWEPOpen, EncryptionWEPShared, EncryptionNone} {
		if strings.EqualFold(s, string(e)) {
			return e, nil
		}
	}
	return EncryptionWPA, fmt.Errorf("unknown wifi encryption scheme %q", s)
}

// IPMode selects DHCP or a static address
type IPMode int

const (
	IPModeDHCP IPMode = iota
	IPModeStatic
)

// String returns the mode name used on the command line
func (m IPMode) String() string {
	switch m {
	case IPModeDHCP:
		return "dhcp"
	case IPModeStatic:
		return "static"
	default:
		return fmt.Sprintf("IPMode(%d)", int(m))
	}
}

// ParseIPMode parses "dhcp" or "static" (empty selects dhcp)
func ParseIPMode(s string) (IPMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dhcp":
		return IPModeDHCP, nil
	case "static":
		return IPModeStatic, nil
	default:
		return IPModeDHCP, fmt.Errorf("unknown ip mode %q", s)
	}
}

// WiFiSettings holds the wireless credentials, used only for ConnectionWiFi
type WiFiSettings struct {
	SSID       string
	Password   string
	Stealth    bool
	Encryption Encryption
}

// StaticIP holds a fixed address block
type StaticIP struct {
	Address    string
	SubnetMask string
	Gateway    string
	DNS        string
}

// Complete reports whether all four fields are set
func (s StaticIP) Complete() bool {
	return s.Address != "" && s.SubnetMask != "" && s.Gateway != "" && s.DNS != ""
}

// RTMPAuth holds credentials for authenticated publishing
type RTMPAuth struct {
	Username string
	Password string
}

// Streaming describes the RTMP destination
type Streaming struct {
	RTMPURL   string
	StreamKey string
	OneTime   bool
	Auth      *RTMPAuth
}

// Config is everything the device learns from one transmission
type Config struct {
	Connection ConnectionType
	WiFi       WiFiSettings
	IPMode     IPMode
	Static     StaticIP
	Streaming  Streaming
	Device     modem.DeviceModel
}

// SampleRate returns the sample rate of the target device
func (c Config) SampleRate() int {
	return c.Device.SampleRate()
}

// Validate checks that the configuration can be encoded
func (c Config) Validate() error {
	switch c.Connection {
	case ConnectionEthernet:
	case ConnectionWiFi:
		if c.WiFi.SSID == "" {
			return newConfigurationError("wifi.ssid", "an SSID is required for a WiFi connection")
		}
	default:
		return newConfigurationError("connection", fmt.Sprintf("unsupported connection type %d", int(c.Connection)))
	}

	_, err := parseRTMPURL(c.Streaming.RTMPURL, c.Streaming.StreamKey)
	return err
}
