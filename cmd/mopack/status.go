package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the modpack's install and update state",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		profile, err := s.initProfile(cmd)
		if err != nil {
			return err
		}
		m := profile.Manifest

		fmt.Println(titleStyle.Render(fmt.Sprintf("%s %s", m.Name, m.ModpackVersion)))
		if m.Subtitle != "" {
			fmt.Println(subtitleStyle.Render(m.Subtitle))
		}
		fmt.Printf("Loader:    %s\n", m.Loader.VersionName())
		fmt.Printf("Items:     %d mods, %d shaderpacks, %d resourcepacks\n",
			len(m.Mods), len(m.Shaderpacks), len(m.Resourcepacks))

		switch {
		case profile.UpdateAvailable:
			fmt.Println("Status:    " + warnStyle.Render("update available"))
		case profile.Installed:
			fmt.Println("Status:    " + okStyle.Render("installed"))
		default:
			fmt.Println("Status:    not installed")
		}

		if branches, err := profile.Forge.Branches(cmd.Context(), s.source); err == nil && len(branches) > 0 {
			names := make([]string, len(branches))
			for i, b := range branches {
				names[i] = b.Name
			}
			fmt.Printf("Branches:  %s\n", strings.Join(names, ", "))
		}

		if len(m.Features) > 0 {
			var lines []string
			for _, feat := range m.Features {
				mark := " "
				if slices.Contains(profile.EnabledFeatures, feat.ID) {
					mark = "x"
				}
				lines = append(lines, fmt.Sprintf("  [%s] %s (%s)", mark, feat.Name, feat.ID))
			}
			fmt.Println("Features:")
			fmt.Println(strings.Join(lines, "\n"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
