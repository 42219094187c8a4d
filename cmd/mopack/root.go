package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"mopack/internal/httpcache"
	"mopack/internal/installer"
	"mopack/internal/launcher"
	"mopack/internal/storage/config"
)

var version = "1.0.0"

// Global flags
var (
	configDir    string
	launcherFlag string
	sourceFlag   string
	branchFlag   string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "mopack",
	Short: "mopack - declarative modpack installer",
	Long: `mopack synchronizes a curated modpack manifest against a local launcher
installation: it downloads missing mods, shaderpacks and resourcepacks,
removes disabled ones, keeps include bundles in sync and registers the
result with your launcher.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/mopack)")
	rootCmd.PersistentFlags().StringVarP(&launcherFlag, "launcher", "l", "", `launcher: "vanilla" or "multimc-<DirName>"`)
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "modpack source (<owner>/<repo>)")
	rootCmd.PersistentFlags().StringVarP(&branchFlag, "branch", "b", "", "modpack branch")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session is the resolved configuration a command runs with.
type session struct {
	cfg       *config.Config
	cfgDir    string
	selection string
	launcher  launcher.Launcher
	source    string
	branch    string
	http      *httpcache.Client
}

func newSession() (*session, error) {
	dir := configDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating config dir: %w", err)
		}
		dir = filepath.Join(base, "mopack")
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	selection := cfg.Launcher
	if launcherFlag != "" {
		selection = launcherFlag
	}
	l, err := launcher.Detect(selection)
	if err != nil {
		return nil, err
	}

	src := cfg.Source
	if sourceFlag != "" {
		src = sourceFlag
	}
	if src == "" {
		return nil, fmt.Errorf("no modpack source configured: pass --source or set it in config.yaml")
	}
	if !strings.HasSuffix(src, "/") {
		src += "/"
	}

	branch := cfg.Branch
	if branchFlag != "" {
		branch = branchFlag
	}

	return &session{
		cfg:       cfg,
		cfgDir:    dir,
		selection: selection,
		launcher:  l,
		source:    src,
		branch:    branch,
		http:      httpcache.New(os.Getenv("GITHUB_TOKEN")),
	}, nil
}

// persist records the session's effective settings so later invocations can
// run without flags. Failures are not fatal: the install already succeeded.
func (s *session) persist() {
	s.cfg.Launcher = s.selection
	s.cfg.Source = strings.TrimSuffix(s.source, "/")
	s.cfg.Branch = s.branch
	if err := s.cfg.Save(s.cfgDir); err != nil {
		log.Warn("could not persist settings", "err", err)
	}
}

func (s *session) initProfile(cmd *cobra.Command) (*installer.InstallerProfile, error) {
	return installer.Init(cmd.Context(), installer.Options{
		HTTP:     s.http,
		Source:   s.source,
		Branch:   s.branch,
		Launcher: s.launcher,
	})
}
