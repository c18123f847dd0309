package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFeaturedCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured speakers (more than one session in a conference)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, logger)
			if err != nil {
				return err
			}
			featured, err := a.service.GetFeaturedSpeakers(cmd.Context())
			if err != nil {
				return err
			}

			if outputFormat(cmd) == "json" {
				return printJSON(featured)
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SPEAKER\tSESSIONS")
			for _, fs := range featured {
				fmt.Fprintf(w, "%s\t%s\n", fs.Speaker, strings.Join(fs.SessionNames, ", "))
			}
			return w.Flush()
		},
	}
}
