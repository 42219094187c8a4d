package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mopack/internal/installer"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an installed modpack",
	Long: `Diff the remote manifest against the installed one, drop superseded
items and download what changed. Falls back to a fresh install when the
modpack is not installed yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		profile, err := s.initProfile(cmd)
		if err != nil {
			return err
		}
		applyFeatureSelection(profile)
		if !profile.Installed {
			if err := installer.Install(cmd.Context(), profile); err != nil {
				return err
			}
			s.persist()
			fmt.Printf("Installed %s %s\n", profile.Manifest.Name, profile.Manifest.ModpackVersion)
			return nil
		}
		if err := installer.Update(cmd.Context(), profile); err != nil {
			return err
		}
		s.persist()
		fmt.Printf("Updated %s to %s\n", profile.Manifest.Name, profile.Manifest.ModpackVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
