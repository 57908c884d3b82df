package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scriptdeck/scriptdeck/internal/branding"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/scriptdeck/scriptdeck/internal/descriptor"
	"github.com/scriptdeck/scriptdeck/internal/formats"
	"github.com/scriptdeck/scriptdeck/internal/lint"
	"github.com/scriptdeck/scriptdeck/internal/manifest"
	"github.com/spf13/cobra"
)

// errLintFailed makes the process exit non-zero without repeating the report.
var errLintFailed = errors.New("lint found problems")

var (
	lintJSON     bool
	lintSecurity bool
	lintStrict   bool
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check script annotations for problems",
	Long: `Check the project's config against package.json: structure, descriptions,
cross-references, naming consistency and risky commands.

Projects without a config are linted on the config migrate would write.
Exits with status 1 when any error or warning is reported.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Output in JSON format")
	lintCmd.Flags().BoolVar(&lintSecurity, "security", true, "Check commands for risky patterns")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Also require an emoji and a title on every script")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	m, err := loadProject()
	if err != nil {
		return err
	}

	cfg, err := lintSubject(m)
	if err != nil {
		return err
	}

	policy := config.LintPolicy()
	if cmd.Flags().Changed("security") {
		policy.Security = lintSecurity
	}
	if lintStrict {
		policy.RequireEmoji = true
		policy.RequireTitle = true
	}

	report := lint.Run(cfg, m.Commands(), policy)
	report.AddSchema(schemaIssues(m))

	if lintJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling lint report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else if err := lint.WriteText(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if !report.Passed {
		return errLintFailed
	}
	return nil
}

// lintSubject returns the project's own config, or the converted one when
// the project has none.
func lintSubject(m *manifest.Manifest) (descriptor.Config, error) {
	if native, _ := m.Native(); native != nil {
		return native.Normalize(), nil
	}
	cfg, _, err := formatRegistry.Convert(m)
	if errors.Is(err, formats.ErrUnknownFormat) {
		return descriptor.Config{}, nil
	}
	if err != nil {
		return descriptor.Config{}, err
	}
	return *cfg, nil
}

// schemaIssues validates the sidecar and the embedded field. Unreadable
// files are reported as issues too.
func schemaIssues(m *manifest.Manifest) []manifest.ValidationIssue {
	var issues []manifest.ValidationIssue
	collect := func(res *manifest.ValidationResult, err error) {
		if err != nil {
			issues = append(issues, manifest.ValidationIssue{Message: err.Error(), Keyword: "syntax"})
			return
		}
		issues = append(issues, res.Issues...)
	}

	if m.SidecarPath != "" {
		res, err := manifest.ValidateFile(m.SidecarPath)
		collect(res, err)
	}
	res, err := manifest.ValidateEmbedded(m, branding.ManifestField())
	collect(res, err)
	return issues
}
