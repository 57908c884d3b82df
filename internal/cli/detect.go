package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var detectJSON bool

// detectEntry is one matching format for display.
type detectEntry struct {
	Format   string `json:"format"`
	Priority int    `json:"priority"`
	Selected bool   `json:"selected"`
	Groups   int    `json:"groups"`
	Scripts  int    `json:"scripts"`
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show which annotation formats package.json uses",
	Long: `List every annotation format found in package.json, highest priority first.
The selected format is the one migrate and init convert from.`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	m, err := loadProject()
	if err != nil {
		return err
	}

	var entries []detectEntry
	for i, f := range formatRegistry.DetectAll(m) {
		groups := f.Parse(m)
		scripts := 0
		for _, g := range groups {
			scripts += len(g.Scripts)
		}
		entries = append(entries, detectEntry{
			Format:   f.Name(),
			Priority: f.Priority(),
			Selected: i == 0,
			Groups:   len(groups),
			Scripts:  scripts,
		})
	}

	if detectJSON {
		if entries == nil {
			entries = []detectEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling detection report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No scripts or annotations found in %s\n", m.Path)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tPRIORITY\tGROUPS\tSCRIPTS\t")
	for _, e := range entries {
		mark := ""
		if e.Selected {
			mark = "selected"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", e.Format, e.Priority, e.Groups, e.Scripts, mark)
	}
	return w.Flush()
}
