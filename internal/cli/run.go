package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/aggregate"
	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/scriptdeck/scriptdeck/internal/runner"
	"github.com/scriptdeck/scriptdeck/internal/search"
	"github.com/scriptdeck/scriptdeck/internal/tui"
	"github.com/spf13/cobra"
)

// Collaborators replaced in tests.
var (
	newPicker      = tui.Default
	newRunner      = runner.New
	writeClipboard = clipboard.WriteAll
	interactive    = func() bool { return tui.IsTerminal(os.Stdin) }
)

var (
	runCopy    bool
	runManager string
)

var runCmd = &cobra.Command{
	Use:   "run <script> [-- args...]",
	Short: "Run a package.json script",
	Long: `Run a script through the project's package manager.

The package manager is taken from --pm, the package_manager setting, the
packageManager field of package.json, or the lock file present, in that order.
Arguments after the script name are passed to the script.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "Copy the command line to the clipboard instead of running it")
	runCmd.Flags().StringVar(&runManager, "pm", "", "Package manager to use (npm, yarn, pnpm, bun)")
	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	m, err := loadProject()
	if err != nil {
		return err
	}

	key := args[0]
	if _, ok := m.Command(key); !ok {
		return fmt.Errorf("script %q is not defined in %s", key, m.Path)
	}

	pm := detectManager(m)
	if runCopy {
		return copyCommand(cmd, pm, key)
	}
	return newRunner(pm).Run(cmd.Context(), m.Dir(), key, args[1:])
}

func detectManager(m *manifest.Manifest) runner.PackageManager {
	override := runManager
	if override == "" {
		override = config.Get(config.KeyPackageManager)
	}
	pm := runner.Detect(m, override)
	log.Debug("package manager", "name", pm.Name, "source", pm.Source)
	return pm
}

func copyCommand(cmd *cobra.Command, pm runner.PackageManager, key string) error {
	line := pm.CommandLine(key)
	if err := writeClipboard(line); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied: %s\n", line)
	return nil
}

// runLauncher shows the script menu until a script is run or the user exits.
func runLauncher(cmd *cobra.Command, args []string) error {
	m, err := loadProject()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	picker := newPicker()

	if cfgErr := m.ConfigErr(); cfgErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", cfgErr)
	} else if native, _ := m.Native(); native == nil && interactive() {
		if m, err = offerInit(cmd, picker, m); err != nil {
			return err
		}
	}

	opts := aggregate.Options{
		IncludeLifecycle: config.Bool(config.KeyIncludeLifecycle),
		Preview:          config.Bool(config.KeyPreview),
	}
	title := fmt.Sprintf("Scripts in %s", m.Path)

	for {
		entries := append(aggregate.Build(m, opts), aggregate.Controls(opts.Preview)...)
		labels := aggregate.Labels(entries)

		idx, err := picker.Pick(ctx, title, labels, func(q string) []int {
			return search.Indexes(q, labels)
		})
		if errors.Is(err, tui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		e := entries[idx]
		switch {
		case e.Action == aggregate.ActionExit:
			return nil
		case e.Action == aggregate.ActionTogglePreview:
			opts.Preview = !opts.Preview
		case e.Action == aggregate.ActionMigrate:
			if m, err = migrateInteractive(cmd, picker, m); err != nil {
				return err
			}
		case !e.Selectable():
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is documented but not defined in package.json\n", e.Key)
		default:
			return newRunner(detectManager(m)).Run(ctx, m.Dir(), e.Key, nil)
		}
	}
}

// offerInit asks once whether to write a config file for a project that
// has none, and returns the reloaded project. Projects whose config failed to
// decode are never offered one.
func offerInit(cmd *cobra.Command, picker tui.Picker, m *manifest.Manifest) (*manifest.Manifest, error) {
	ok, err := picker.Confirm(cmd.Context(), fmt.Sprintf("No %s config found. Create one now?", branding.CLIName()), false)
	if errors.Is(err, tui.ErrCancelled) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return m, nil
	}
	target, err := configuredTarget()
	if err != nil {
		return nil, err
	}
	if err := migrateProject(cmd, m, migrateRequest{target: target}); err != nil {
		return nil, err
	}
	return manifest.Load(m.Dir())
}
