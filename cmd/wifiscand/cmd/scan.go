package cmd

import (
	"strings"

	wifiscand "github.com/dogeorg/wifiscand/pkg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the scan loop until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		config := serverConfig()
		if err := config.Validate(); err != nil {
			return err
		}
		Server(config).Start()
		return nil
	},
}

func init() {
	d := wifiscand.DefaultServerConfig()
	f := scanCmd.Flags()

	f.StringP("interface", "i", d.Interface, "wireless interface, defaults to the first station interface")
	f.Duration("delay", d.ScanDelay, "delay between scans")
	f.String("ssid", d.Targets.SSID, "SSID used by the ssid filter")
	f.Int("rssi", d.Targets.MinRSSI, "minimum RSSI (dBm) used by the rssi filter")
	f.String("mac", d.Targets.BSSID, "BSSID used by the mac filter")
	f.String("band", d.Targets.Band, "band used by the band filter (any, 2.4, 5, 6)")
	f.StringSlice("press", d.PressSources, "press sources (signal, stdin), comma separated")
	f.Bool("simulate", false, "use a simulated radio")
	f.String("report-url", "", "POST a JSON summary of every scan to this URL")
	f.Duration("monitor-interval", d.MonitorInterval, "how often to log process stats (0 disables)")
	f.BoolP("verbose", "v", false, "be verbose")

	viper.BindPFlag("interface", f.Lookup("interface"))
	viper.BindPFlag("delay", f.Lookup("delay"))
	viper.BindPFlag("target.ssid", f.Lookup("ssid"))
	viper.BindPFlag("target.rssi", f.Lookup("rssi"))
	viper.BindPFlag("target.mac", f.Lookup("mac"))
	viper.BindPFlag("target.band", f.Lookup("band"))
	viper.BindPFlag("press", f.Lookup("press"))
	viper.BindPFlag("simulate", f.Lookup("simulate"))
	viper.BindPFlag("report_url", f.Lookup("report-url"))
	viper.BindPFlag("monitor_interval", f.Lookup("monitor-interval"))
	viper.BindPFlag("verbose", f.Lookup("verbose"))

	rootCmd.AddCommand(scanCmd)
}

func serverConfig() wifiscand.ServerConfig {
	return wifiscand.ServerConfig{
		Interface: viper.GetString("interface"),
		ScanDelay: viper.GetDuration("delay"),
		Targets: wifiscand.TargetConfig{
			SSID:    viper.GetString("target.ssid"),
			MinRSSI: viper.GetInt("target.rssi"),
			BSSID:   viper.GetString("target.mac"),
			Band:    viper.GetString("target.band"),
		},
		PressSources:    splitList(viper.GetStringSlice("press")),
		Simulate:        viper.GetBool("simulate"),
		ReportURL:       viper.GetString("report_url"),
		MonitorInterval: viper.GetDuration("monitor_interval"),
		Verbose:         viper.GetBool("verbose"),
	}
}

// splitList flattens comma separated entries. Env vars and config strings
// arrive as one element ("signal,stdin") rather than a list.
func splitList(in []string) []string {
	out := []string{}
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
