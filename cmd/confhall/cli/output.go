package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"confhall/internal/entity"
	"confhall/internal/timecode"
)

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSessions renders sessions as a table, decoding stored start times
// back to clock strings for display.
func printSessions(cmd *cobra.Command, sessions []entity.Session) error {
	if outputFormat(cmd) == "json" {
		return printJSON(sessions)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEAKER\tDATE\tSTART\tTYPES\tCONFERENCE")
	for _, s := range sessions {
		date, start := "-", "-"
		if s.HasDate() {
			date = s.Date.Format("2006-01-02")
		}
		if s.HasStartTime() {
			start = timecode.Format(s.StartTime)
		}
		types := make([]string, 0, len(s.TypeOfSession))
		for _, t := range s.TypeOfSession {
			types = append(types, string(t))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, s.Speaker, date, start, strings.Join(types, ","), s.ConferenceKey)
	}
	return w.Flush()
}
