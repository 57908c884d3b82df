package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/enhance"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/scriptdeck/scriptdeck/internal/migrate"
	"github.com/scriptdeck/scriptdeck/internal/search"
	"github.com/scriptdeck/scriptdeck/internal/tui"
	"github.com/spf13/cobra"
)

// newProvider builds the AI provider used by --ai.
var newProvider = func(ctx context.Context) (enhance.Provider, error) {
	return enhance.NewGemini(ctx, os.Getenv("GEMINI_API_KEY"), config.Get(config.KeyAIModel))
}

var (
	migrateTo     string
	migrateFrom   string
	migrateAI     bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert script annotations to the canonical config",
	Long: `Detect the annotation convention used by package.json, convert it, and write
the result as a sidecar file (yaml, json) or into package.json (manifest).

When several conventions are present the highest-priority one is converted;
run detect to see them all and --from to choose another.

With --ai the converted config is sent to Gemini (GEMINI_API_KEY) to improve
groups, titles and descriptions. If the call fails the plain conversion is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadProject()
		if err != nil {
			return err
		}
		target, err := flagTarget(migrateTo)
		if err != nil {
			return err
		}
		return migrateProject(cmd, m, migrateRequest{
			target: target,
			from:   migrateFrom,
			ai:     migrateAI,
			dryRun: migrateDryRun,
		})
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "Target: yaml, json or manifest (default: migrate.target setting)")
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "Format to convert from (default: highest-priority match)")
	migrateCmd.Flags().BoolVar(&migrateAI, "ai", false, "Improve the converted config with Gemini")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Print the result instead of writing it")
	rootCmd.AddCommand(migrateCmd)
}

// migrateRequest describes one conversion.
type migrateRequest struct {
	target migrate.Target
	from   string
	ai     bool
	dryRun bool
}

func configuredTarget() (migrate.Target, error) {
	return migrate.ParseTarget(config.Get(config.KeyMigrateTarget))
}

func flagTarget(value string) (migrate.Target, error) {
	if value == "" {
		return configuredTarget()
	}
	return migrate.ParseTarget(value)
}

// migrateProject converts m and writes (or prints) the result.
func migrateProject(cmd *cobra.Command, m *manifest.Manifest, req migrateRequest) error {
	ctx := cmd.Context()

	opts := migrate.Options{Format: req.from}
	if req.ai {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.AITimeout())
		defer cancel()

		p, err := newProvider(ctx)
		if err != nil {
			log.Warn("continuing without enhancement", "err", err)
		} else {
			opts.Provider = p
		}
	}

	res, err := migrate.Plan(ctx, formatRegistry, m, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if req.dryRun {
		data, err := migrate.Render(m, res.Config, req.target)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	path, err := migrate.Write(m, res.Config, req.target)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Converted %s annotations to %s\n", res.Format, path)
	if req.ai && !res.Enhanced {
		fmt.Fprintln(cmd.ErrOrStderr(), "AI enhancement was skipped; the plain conversion was written.")
	}
	return nil
}

// migrateInteractive runs the launcher's migrate action and returns the
// reloaded project. When several formats match, the user picks the source.
func migrateInteractive(cmd *cobra.Command, picker tui.Picker, m *manifest.Manifest) (*manifest.Manifest, error) {
	ctx := cmd.Context()

	var req migrateRequest
	matched := formatRegistry.DetectAll(m)
	if len(matched) > 1 {
		labels := make([]string, len(matched))
		for i, f := range matched {
			labels[i] = f.Name()
		}
		idx, err := choose(ctx, picker, "Convert from", labels)
		if err != nil {
			return m, ignoreCancel(err)
		}
		req.from = labels[idx]
	}

	labels := make([]string, len(migrate.Targets))
	for i, t := range migrate.Targets {
		labels[i] = fmt.Sprintf("%s (%s)", t, t.Path(m.Dir()))
	}
	idx, err := choose(ctx, picker, "Migrate to", labels)
	if err != nil {
		return m, ignoreCancel(err)
	}
	req.target = migrate.Targets[idx]

	req.ai, err = picker.Confirm(ctx, "Improve descriptions with AI?", false)
	if err != nil && !errors.Is(err, tui.ErrCancelled) {
		return nil, err
	}

	if err := migrateProject(cmd, m, req); err != nil {
		return nil, err
	}
	return manifest.Load(m.Dir())
}

func choose(ctx context.Context, picker tui.Picker, title string, labels []string) (int, error) {
	return picker.Pick(ctx, title, labels, func(q string) []int {
		return search.Indexes(q, labels)
	})
}

func ignoreCancel(err error) error {
	if errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	return err
}
