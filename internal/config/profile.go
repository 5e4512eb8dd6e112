package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/hcl"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"liveshellwave/internal/modem"
	"liveshellwave/internal/protocol"
)

// EnvPrefix is the prefix of environment variables read into the profile
const EnvPrefix = "LIVESHELLWAVE_"

// NetworkProfile selects the interface and addressing
type NetworkProfile struct {
	Connection string `koanf:"connection"`
	IPMode     string `koanf:"ip_mode"`
	Address    string `koanf:"address"`
	SubnetMask string `koanf:"subnet_mask"`
	Gateway    string `koanf:"gateway"`
	DNS        string `koanf:"dns"`
}

type WiFiProfile struct {
	SSID       string `koanf:"ssid"`
	Password   string `koanf:"password"`
	Stealth    bool   `koanf:"stealth"`
	Encryption string `koanf:"encryption"`
}

type StreamingProfile struct {
	RTMPURL      string `koanf:"rtmp_url"`
	StreamKey    string `koanf:"stream_key"`
	OneTime      bool   `koanf:"one_time"`
	AuthUser     string `koanf:"auth_user"`
	AuthPassword string `koanf:"auth_password"`
}

// Profile is the user-facing description of one device setup, loaded from
// an HCL file, the environment and command line flags, in that order.
type Profile struct {
	Device    string           `koanf:"device"`
	Platform  string           `koanf:"platform"`
	Network   NetworkProfile   `koanf:"network"`
	WiFi      WiFiProfile      `koanf:"wifi"`
	Streaming StreamingProfile `koanf:"streaming"`
}

// ProfilePaths returns the locations searched when no profile is given
func ProfilePaths() []string {
	paths := []string{"/etc/liveshellwave/profile.hcl"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "liveshellwave", "profile.hcl"))
	}
	return append(paths, "./profile.hcl")
}

// FindProfile returns the first existing profile path, or "" if none exists
func FindProfile(paths []string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			return path
		}
	}
	return ""
}

// LoadProfile layers the HCL file at path (skipped when empty), the
// LIVESHELLWAVE_ environment and overrides. Override keys use the koanf
// dotted form, e.g. "streaming.stream_key".
func LoadProfile(path string, overrides map[string]any) (*Profile, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), hcl.Parser(true)); err != nil {
			return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
			return strings.Replace(key, "_", ".", 1), v
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(mapProvider(overrides), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var profile Profile
	if err := k.Unmarshal("", &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

// mapProvider feeds dotted keys into koanf as a nested map
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("map provider does not support this method")
}

func (m mapProvider) Read() (map[string]any, error) {
	out := make(map[string]any)
	for key, value := range m {
		parts := strings.Split(key, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return out, nil
}

// ProtocolConfig converts the profile into an encodable configuration.
// Unknown enum names are reported as configuration errors.
func (p *Profile) ProtocolConfig() (protocol.Config, error) {
	var cfg protocol.Config

	device, err := modem.ParseDeviceModel(p.Device)
	if err != nil {
		return cfg, &protocol.ConfigurationError{Field: "device", Reason: err.Error()}
	}
	connection, err := protocol.ParseConnectionType(p.Network.Connection)
	if err != nil {
		return cfg, &protocol.ConfigurationError{Field: "network.connection", Reason: err.Error()}
	}
	ipMode, err := protocol.ParseIPMode(p.Network.IPMode)
	if err != nil {
		return cfg, &protocol.ConfigurationError{Field: "network.ip_mode", Reason: err.Error()}
	}
	encryption, err := protocol.ParseEncryption(p.WiFi.Encryption)
	if err != nil {
		return cfg, &protocol.ConfigurationError{Field: "wifi.encryption", Reason: err.Error()}
	}

	cfg = protocol.Config{
		Connection: connection,
		WiFi: protocol.WiFiSettings{
			SSID:       p.WiFi.SSID,
			Password:   p.WiFi.Password,
			Stealth:    p.WiFi.Stealth,
			Encryption: encryption,
		},
		IPMode: ipMode,
		Static: protocol.StaticIP{
			Address:    p.Network.Address,
			SubnetMask: p.Network.SubnetMask,
			Gateway:    p.Network.Gateway,
			DNS:        p.Network.DNS,
		},
		Streaming: protocol.Streaming{
			RTMPURL:   p.Streaming.RTMPURL,
			StreamKey: p.Streaming.StreamKey,
			OneTime:   p.Streaming.OneTime,
		},
		Device: device,
	}

	if p.Streaming.AuthUser != "" || p.Streaming.AuthPassword != "" {
		cfg.Streaming.Auth = &protocol.RTMPAuth{
			Username: p.Streaming.AuthUser,
			Password: p.Streaming.AuthPassword,
		}
	}

	return cfg, nil
}
