package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auto-monocle/internal/discovery"
)

// cameraRow is the --json shape of one camera in `cameras list`.
type cameraRow struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
	Source   string `json:"source"`
	URL      string `json:"url,omitempty"`
}

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Inspect discovered cameras",
	Long:  `Run discovery without writing any file and show how each camera resolved.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List camera entities and their resolved stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		opts, err := loadOptions()
		if err != nil {
			return err
		}
		d, err := setupDiscoverer(opts, log)
		if err != nil {
			return err
		}

		res := d.Run(cmd.Context(), discovery.Filter(opts.CameraFilters))
		return printCameras(os.Stdout, res.Entities, jsonOutput)
	},
}

func printCameras(out io.Writer, entities []*discovery.CameraEntity, asJSON bool) error {
	rows := make([]cameraRow, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, cameraRow{
			EntityID: e.ID,
			Name:     e.DisplayName,
			Source:   e.BoundSource.String(),
			URL:      e.BoundURL,
		})
	}

	// --- JSON OUTPUT ---
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	// -------------------

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ENTITY ID\tNAME\tSOURCE\tURL")
	fmt.Fprintln(w, "---------\t----\t------\t---")

	for _, r := range rows {
		url := r.URL
		if url == "" {
			url = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.EntityID, r.Name, r.Source, url)
	}
	return w.Flush()
}

func init() {
	// Register Parent
	rootCmd.AddCommand(camerasCmd)

	// Register Subcommands
	camerasCmd.AddCommand(camerasListCmd)
}
