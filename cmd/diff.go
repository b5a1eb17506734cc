package cmd

import (
	"fmt"
	"strings"

	"asset-sync/core/manifest"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

var diffContext int

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show how the build manifest differs from the persisted manifest",
	Long:  `Prints a unified diff with one "path fingerprint" line per resource. An empty output means the next activation retains every cached entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		persisted, err := a.sync.PersistedManifest(cmd.Context())
		if err != nil {
			return err
		}
		if persisted == nil {
			a.logger.Warn("No persisted manifest, the next activation recreates the content cache")
		}

		out, err := manifestDiff(persisted, a.sync.Build().Resources, a.sync.Names().Manifest, a.cfg.Sync.ManifestPath, diffContext)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(diffCmd)
	diffCmd.Flags().IntVarP(&diffContext, "context", "U", 3, "Number of context lines")
}

// manifestDiff renders a unified diff between two resource maps.
func manifestDiff(from, to manifest.Map, fromName, toName string, lines int) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(renderMap(from)),
		B:        difflib.SplitLines(renderMap(to)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  lines,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func renderMap(m manifest.Map) string {
	var b strings.Builder
	for _, key := range m.Keys() {
		fmt.Fprintf(&b, "%s %s\n", key, m[key])
	}
	return b.String()
}
