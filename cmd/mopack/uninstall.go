package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mopack/internal/installer"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the installed modpack",
	Long: `Remove the instance installed from the configured source. Instances
are recognized by the identity marker the installer wrote into the modpack
root, so only content this tool installed is touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.launcher.Uninstall(installer.MarkerName(s.source)); err != nil {
			return err
		}
		fmt.Println("Uninstalled.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
