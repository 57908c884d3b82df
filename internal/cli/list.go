package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/scriptdeck/scriptdeck/internal/aggregate"
	"github.com/scriptdeck/scriptdeck/internal/config"
	"github.com/spf13/cobra"
)

var (
	listJSON      bool
	listLifecycle bool
	listQuery     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scripts as the launcher menu shows them",
	Long: `List every script with its group, status and description.

Status is "present" for documented scripts, "missing" for documented scripts
package.json does not define, and "extra" for scripts no annotation covers.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listLifecycle, "lifecycle", false, "Include npm lifecycle scripts")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Fuzzy filter, best matches first")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := loadProject()
	if err != nil {
		return err
	}

	entries := aggregate.Build(m, aggregate.Options{
		IncludeLifecycle: listLifecycle || config.Bool(config.KeyIncludeLifecycle),
	})
	if listQuery != "" {
		entries = aggregate.Filter(entries, listQuery)
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No scripts found.")
		return nil
	}
	return printListTable(cmd, entries)
}

func printListTable(cmd *cobra.Command, entries []aggregate.MenuEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "GROUP\tSCRIPT\tSTATUS\tDESCRIPTION")
	for _, e := range entries {
		desc := strings.TrimSpace(strings.TrimPrefix(e.Description, e.Emoji))
		if e.Emoji != "" {
			desc = e.Emoji + " " + desc
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Group, e.Key, e.Status, desc)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []aggregate.MenuEntry) error {
	if entries == nil {
		entries = []aggregate.MenuEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
