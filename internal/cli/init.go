package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	initTo    string
	initAI    bool
	initForce bool
)

func init() {
	initCmd.Flags().StringVar(&initTo, "to", "", "Target: yaml, json or manifest (default: migrate.target setting)")
	initCmd.Flags().BoolVar(&initAI, "ai", false, "Improve the generated config with Gemini")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config for the current project",
	Long: `Create a config from whatever annotations package.json already has.

Projects without annotations get one group listing every script. An existing
config, including one that fails to parse, is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadProject()
		if err != nil {
			return err
		}
		if !initForce {
			if err := m.ConfigErr(); err != nil {
				return fmt.Errorf("%w; fix it or use --force to overwrite it", err)
			}
			if _, source := m.Native(); source != "" {
				return fmt.Errorf("%s already has a config; use --force to overwrite it or migrate to move it", source)
			}
		}
		target, err := flagTarget(initTo)
		if err != nil {
			return err
		}
		return migrateProject(cmd, m, migrateRequest{target: target, ai: initAI})
	},
}
