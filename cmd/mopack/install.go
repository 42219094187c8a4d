package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"mopack/internal/domain"
	"mopack/internal/installer"
)

var featuresFlag []string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the modpack",
	Long: `Install the modpack from the configured source. Feature selection
defaults to the manifest's defaults on a first install and to the previously
recorded selection afterwards; --features overrides it.`,
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
		if err := installer.Install(cmd.Context(), profile); err != nil {
			return err
		}
		s.persist()
		fmt.Printf("Installed %s %s\n", profile.Manifest.Name, profile.Manifest.ModpackVersion)
		return nil
	},
}

func init() {
	installCmd.Flags().StringSliceVar(&featuresFlag, "features", nil, "feature ids to enable (comma separated)")
	updateCmd.Flags().StringSliceVar(&featuresFlag, "features", nil, "feature ids to enable (comma separated)")
	rootCmd.AddCommand(installCmd)
}

// applyFeatureSelection replaces the profile's feature set with the
// --features flag value. The default sentinel id is always kept enabled.
func applyFeatureSelection(p *installer.InstallerProfile) {
	if featuresFlag == nil {
		return
	}
	enabled := []string{domain.DefaultID}
	for _, id := range featuresFlag {
		if id != "" && !slices.Contains(enabled, id) {
			enabled = append(enabled, id)
		}
	}
	p.EnabledFeatures = enabled
}
