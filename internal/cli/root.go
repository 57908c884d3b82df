package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/formats"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir string
	verbose    bool
)

// formatRegistry is shared by every command.
var formatRegistry = formats.DefaultRegistry()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads the script annotations of a package.json, whatever convention
they follow, and turns them into a searchable launcher menu.

Run without a subcommand to pick a script interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		setupLogging(cmd.ErrOrStderr())

		dir, err := resolveDir()
		if err != nil {
			return err
		}
		config.LoadDotenv(dir)
		return nil
	},
	RunE: runLauncher,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory containing package.json (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func setupLogging(w io.Writer) {
	logger := log.NewWithOptions(w, log.Options{Prefix: branding.CLIName()})
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	} else if parsed, err := log.ParseLevel(config.Get(config.KeyLogLevel)); err == nil {
		level = parsed
	}
	logger.SetLevel(level)
	log.SetDefault(logger)
}

func resolveDir() (string, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// loadProject reads package.json and its sidecar from the project directory.
func loadProject() (*manifest.Manifest, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	return manifest.Load(dir)
}
