package cmd

import (
	"fmt"

	"github.com/dogeorg/wifiscand/pkg/system/radio"
	"github.com/spf13/cobra"
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless interfaces that can be scanned",
	RunE: func(cmd *cobra.Command, args []string) error {
		wifiInterfaces, err := radio.ListInterfaces()
		if err != nil {
			return err
		}

		if len(wifiInterfaces) == 0 {
			fmt.Println("No wireless interfaces found.")
			return nil
		}

		for _, ifi := range wifiInterfaces {
			fmt.Printf(" - %s (%s, phy%d, %s)\n", ifi.Name, ifi.Type, ifi.PHY, ifi.HardwareAddr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}
