package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"liveshellwave/internal/app"
	"liveshellwave/internal/preset"
)

// profileFlag binds a command line flag to a profile key
type profileFlag struct {
	name    string
	key     string
	usage   string
	boolean bool
}

var profileFlags = []profileFlag{
	{name: "device", key: "device", usage: "Device model (LiveShell2, LiveShellPro, LiveShellX)"},
	{name: "platform", key: "platform", usage: "Streaming platform preset (see 'presets')"},
	{name: "connection", key: "network.connection", usage: "Network connection (ethernet, wifi)"},
	{name: "ssid", key: "wifi.ssid", usage: "WiFi SSID"},
	{name: "wifi-password", key: "wifi.password", usage: "WiFi password"},
	{name: "stealth", key: "wifi.stealth", usage: "WiFi network is hidden", boolean: true},
	{name: "encryption", key: "wifi.encryption", usage: "WiFi encryption (WPA, WEP_Open, WEP_Shared, None)"},
	{name: "ip-mode", key: "network.ip_mode", usage: "Address assignment (dhcp, static)"},
	{name: "ip", key: "network.address", usage: "Static IP address"},
	{name: "netmask", key: "network.subnet_mask", usage: "Static subnet mask"},
	{name: "gateway", key: "network.gateway", usage: "Static default gateway"},
	{name: "dns", key: "network.dns", usage: "Static DNS server"},
	{name: "rtmp-url", key: "streaming.rtmp_url", usage: "RTMP url (defaults to the platform preset)"},
	{name: "stream-key", key: "streaming.stream_key", usage: "Stream key"},
	{name: "one-time", key: "streaming.one_time", usage: "Forget the streaming settings after one broadcast", boolean: true},
	{name: "rtmp-user", key: "streaming.auth_user", usage: "RTMP authentication user"},
	{name: "rtmp-password", key: "streaming.auth_password", usage: "RTMP authentication password"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "liveshellwave",
		Short: "LiveShell configuration sound encoder",
		Long: `Encodes network and streaming settings for Cerevo LiveShell devices into
an FSK audio signal. Play it near the device microphone while the device is
in setup mode, or save it as a WAV file to play later.

Settings come from an HCL profile, LIVESHELLWAVE_ environment variables and
flags, later sources overriding earlier ones.

Example usage:
  liveshellwave --platform youtube --stream-key abcd-1234 --play
  liveshellwave --connection wifi --ssid studio --wifi-password secret --stream-key abcd-1234 -o setup.wav`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.WriteVersion(cmd.OutOrStdout())
				return nil
			}

			overrides, err := collectOverrides(cmd)
			if err != nil {
				return err
			}
			config.Overrides = overrides

			application := app.NewApplication(config)
			result, err := application.Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, path := range result.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
			}
			for _, location := range result.Uploads {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", location)
			}
			return nil
		},
	}

	for _, f := range profileFlags {
		if f.boolean {
			rootCmd.Flags().Bool(f.name, false, f.usage)
		} else {
			rootCmd.Flags().String(f.name, "", f.usage)
		}
	}

	rootCmd.Flags().StringVarP(&config.OutputPath, "output", "o", "", "Write the WAV file to this path")
	rootCmd.Flags().StringVar(&config.OutDir, "out-dir", app.DefaultOutDir, "Directory for the default WAV file name")
	rootCmd.Flags().BoolVar(&config.Play, "play", false, "Play the signal on the default audio output")
	rootCmd.Flags().BoolVar(&config.Upload, "upload", false, "Upload the WAV file to object storage (LIVESHELLWAVE_S3_*)")
	rootCmd.Flags().StringVar(&config.ProfilePath, "profile", "", "Profile file (default: first of /etc, ~/.config, ./profile.hcl)")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "", "Also write logs to daily files in this directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", app.DefaultLogRotateUTC, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	rootCmd.AddCommand(newPresetsCmd(), newVersionCmd())

	return rootCmd
}

// collectOverrides returns the profile keys of every flag set on the command line
func collectOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	for _, f := range profileFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}

		if f.boolean {
			value, err := cmd.Flags().GetBool(f.name)
			if err != nil {
				return nil, fmt.Errorf("failed to read --%s: %w", f.name, err)
			}
			overrides[f.key] = value
			continue
		}

		value, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read --%s: %w", f.name, err)
		}
		overrides[f.key] = value
	}
	return overrides, nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List streaming platform presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePresets(cmd.OutOrStdout())
		},
	}
}

func writePresets(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRTMP URL\tNOTE")
	for _, p := range preset.All() {
		url := p.RTMPURL
		if !p.HasURL() {
			url = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, url, p.Note)
	}
	return w.Flush()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.WriteVersion(cmd.OutOrStdout())
		},
	}
}
