package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"confhall/internal/filter"
)

func newQueryCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "query [FIELD OP VALUE]...",
		Short: "Query sessions with generic filter clauses",
		Long: `Query sessions with (field, operator, value) filter clauses.

Fields: NAME SPEAKER HIGHLIGHTS TYPE_OF_SESSION START_TIME DATE
Operators: EQ GT GTEQ LT LTEQ NE

START_TIME values use a 12-hour clock ("7 30 PM"); DATE values use
YYYY-MM-DD. Any number of equality clauses may combine with any number of
inequality clauses; inequalities beyond the first, and all inequalities on
list-valued fields, are filtered in memory.

Example:
  confhall query --fixture demo.json START_TIME GT "10 00 AM" TYPE_OF_SESSION NE WORKSHOP`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args)%3 != 0 {
				return fmt.Errorf("filter clauses come in FIELD OP VALUE triples, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, logger)
			if err != nil {
				return err
			}

			var inputs []filter.Input
			for i := 0; i < len(args); i += 3 {
				inputs = append(inputs, filter.Input{
					Field:    args[i],
					Operator: args[i+1],
					Value:    args[i+2],
				})
			}

			sessions, err := a.service.QuerySessions(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			return printSessions(cmd, sessions)
		},
	}
}
