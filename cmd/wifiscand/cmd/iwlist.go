package cmd

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

var iwlistBinary = "iwlist"

var iwlistCmd = &cobra.Command{
	Use:   "iwlist",
	Short: "Run iwlist directly, eg. wifiscand iwlist wlan0 scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := exec.Command(iwlistBinary, args...)
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		if err := c.Run(); err != nil {
			return fmt.Errorf("running %s: %w", iwlistBinary, err)
		}
		return nil
	},
	DisableFlagParsing: true,
}

func init() {
	rootCmd.AddCommand(iwlistCmd)
}
