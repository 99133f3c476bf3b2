package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/dogeorg/wifiscand/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "wifiscand",
	Short: "wifiscand periodically scans for wireless networks",
	Long: `wifiscand periodically scans for wireless networks and prints what it finds.

Each press (SIGUSR1, or enter on stdin with --press stdin) rotates the scan
filter: none, SSID, RSSI, MAC address, band.

Configuration is read from --config (yaml), WIFISCAND_* environment
variables and flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(logConfig())
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := logger.DefaultLogConfig()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().String("log-level", defaults.Level, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", defaults.Format, "log format (text, json)")
	rootCmd.PersistentFlags().String("log-output", defaults.Output, "log output (stdout, stderr, file)")
	rootCmd.PersistentFlags().String("log-file", "", "log file path when --log-output=file")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))

	viper.SetDefault("log.max_size", defaults.MaxSize)
	viper.SetDefault("log.max_backups", defaults.MaxBackups)
	viper.SetDefault("log.max_age", defaults.MaxAge)
	viper.SetDefault("log.compress", defaults.Compress)
}

func initConfig() {
	viper.SetEnvPrefix("WIFISCAND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

func logConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      viper.GetString("log.level"),
		Format:     viper.GetString("log.format"),
		Output:     viper.GetString("log.output"),
		FilePath:   viper.GetString("log.file"),
		MaxSize:    viper.GetInt("log.max_size"),
		MaxBackups: viper.GetInt("log.max_backups"),
		MaxAge:     viper.GetInt("log.max_age"),
		Compress:   viper.GetBool("log.compress"),
	}
}
