package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"auto-monocle/internal/discovery"
	"auto-monocle/pkg/models"
)

type streamRow struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

var streamsCmd = &cobra.Command{
	Use:   "streams",
	Short: "Inspect go2rtc streams",
}

var streamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the streams of the first reachable go2rtc server",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}

		api := newClient(opts)
		streams, endpoint, err := api.ProbeStreams(cmd.Context())
		if err != nil {
			return err
		}

		if !jsonOutput {
			fmt.Printf("go2rtc at %s\n\n", endpoint)
		}
		return printStreams(os.Stdout, streams, tablesFor(opts), jsonOutput)
	},
}

func printStreams(out io.Writer, streams models.StreamList, tables discovery.Tables, asJSON bool) error {
	candidates := discovery.StreamServerCandidates(streams, tables)
	urls := make(map[string]string, len(candidates))
	for _, c := range candidates {
		urls[c.Key] = c.URL
	}

	rows := make([]streamRow, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, streamRow{Name: s.Name, URL: urls[s.Name]})
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tRTSP URL")
	fmt.Fprintln(w, "----\t--------")

	for _, r := range rows {
		url := r.URL
		if url == "" {
			url = "(no rtsp producer)"
		}
		fmt.Fprintf(w, "%s\t%s\n", r.Name, url)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(streamsCmd)
	streamsCmd.AddCommand(streamsListCmd)
}
