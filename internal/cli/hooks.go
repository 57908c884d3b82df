package cli

import (
	"fmt"
	"strings"

	"github.com/scriptdeck/scriptdeck/internal/hooks"
	"github.com/spf13/cobra"
)

var hookName string

func init() {
	for _, c := range []*cobra.Command{hooksInstallCmd, hooksUninstallCmd} {
		c.Flags().StringVar(&hookName, "hook", "pre-commit", "Git hook to manage ("+strings.Join(hooks.Supported, ", ")+")")
		hooksCmd.AddCommand(c)
	}
	rootCmd.AddCommand(hooksCmd)
}

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the git hook that lints scripts",
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Run lint from a git hook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}
		res, err := hooks.Install(dir, hookName)
		if err != nil {
			return fmt.Errorf("installing %s hook: %w", hookName, err)
		}
		if !res.Changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Already installed in %s\n", res.Path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed lint hook in %s\n", res.Path)
		return nil
	},
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the lint block from a git hook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir()
		if err != nil {
			return err
		}
		res, err := hooks.Uninstall(dir, hookName)
		if err != nil {
			return fmt.Errorf("uninstalling %s hook: %w", hookName, err)
		}
		if !res.Changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to remove in %s\n", res.Path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed lint hook from %s\n", res.Path)
		return nil
	},
}
