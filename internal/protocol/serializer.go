package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Section headers of the device line protocol
const (
	SectionWLAN  = "[WLAN1]"
	SectionEther = "[ETHER]"
	SectionLocal = "[LOCAL]"
)

// FlashVersion is appended to every RTMP url. The backslashes are part of the
// value the device expects, not escapes.
const FlashVersion = `FME/3.0\\20(compatible;\\20FMSc/1.0)`

// LiveTypeRTMP is the "type" value of an RTMP LIVE object
const LiveTypeRTMP = 0

// rtmpURLPattern splits an RTMP url into the server part and an optional app path
var rtmpURLPattern = regexp.MustCompile(`^(rtmps?://[-A-Za-z0-9.@_~!#$&'()*+,:;=?[\]]+)(?:/([-A-Za-z0-9./@_~!#$&'()*+,:;=?[\]]+))?$`)

// Serialize renders the configuration as the plaintext the device parses
func Serialize(cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var out strings.Builder
	writeNetwork(&out, cfg)
	out.WriteString(SectionLocal + "\n")

	live, err := liveObject(cfg.Streaming)
	if err != nil {
		return "", err
	}
	out.WriteString("LIVE=")
	out.Write(live)
	out.WriteString("\n")

	return out.String(), nil
}

// writeNetwork writes the connection section and, for a complete static
// block, the address lines. Validate has already rejected WiFi without SSID.
func writeNetwork(out *strings.Builder, cfg Config) {
	if cfg.Connection == ConnectionWiFi {
		wifi := cfg.WiFi
		scheme := wifi.Encryption
		if scheme == "" {
			scheme = EncryptionWPA
		}

		fmt.Fprintf(out, "%s\nESSID=%s\n", SectionWLAN, wifi.SSID)

		if wifi.Password != "" && scheme != EncryptionNone {
			if wifi.Stealth && scheme == EncryptionWPA {
				fmt.Fprintf(out, "PSK=%s\n", wifi.Password)
			} else {
				fmt.Fprintf(out, "WEP=%s\n", wifi.Password)
				if wifi.Stealth && scheme == EncryptionWEPShared {
					out.WriteString("MODE=SHARED\n")
				}
			}
		}
	} else {
		out.WriteString(SectionEther + "\n")
	}

	if cfg.IPMode == IPModeStatic && cfg.Static.Complete() {
		fmt.Fprintf(out, "IP=%s;%s;%s\nDNS=%s\n",
			cfg.Static.Address, cfg.Static.Gateway, cfg.Static.SubnetMask, cfg.Static.DNS)
	}
}

type rtmpTarget struct {
	Server string
	App    string
}

func parseRTMPURL(rawURL, streamKey string) (rtmpTarget, error) {
	if rawURL == "" {
		return rtmpTarget{}, newConfigurationError("streaming.rtmp_url", "an RTMP url is required")
	}
	if streamKey == "" {
		return rtmpTarget{}, newConfigurationError("streaming.stream_key", "a stream key is required")
	}

	match := rtmpURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return rtmpTarget{}, newConfigurationError("streaming.rtmp_url", fmt.Sprintf("%q is not an rtmp:// or rtmps:// url", rawURL))
	}

	return rtmpTarget{Server: match[1], App: match[2]}, nil
}

// RTMPConnectionString builds the space-delimited librtmp style url the
// device hands to its RTMP client.
func RTMPConnectionString(s Streaming) (string, error) {
	target, err := parseRTMPURL(s.RTMPURL, s.StreamKey)
	if err != nil {
		return "", err
	}

	var url strings.Builder
	url.WriteString(target.Server)
	if target.App != "" {
		url.WriteString(" app=" + target.App)
	}
	url.WriteString(" playPath=" + s.StreamKey)
	url.WriteString(" flashver=" + FlashVersion)

	if s.Auth != nil && s.Auth.Username != "" && s.Auth.Password != "" {
		url.WriteString(" pubUser=" + s.Auth.Username + " pubPasswd=" + s.Auth.Password)
	}

	return url.String(), nil
}

// Field order is part of the wire format
type liveRTMP struct {
	OneTime bool   `json:"onetime"`
	URL     string `json:"url"`
}

type liveJSON struct {
	Type int      `json:"type"`
	RTMP liveRTMP `json:"rtmp"`
}

// liveObject renders the LIVE= JSON value
func liveObject(s Streaming) ([]byte, error) {
	url, err := RTMPConnectionString(s)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(liveJSON{Type: LiveTypeRTMP, RTMP: liveRTMP{OneTime: s.OneTime, URL: url}}); err != nil {
		return nil, fmt.Errorf("failed to encode LIVE object: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
