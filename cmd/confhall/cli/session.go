package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"confhall/internal/entity"
	"confhall/internal/session"
)

func newSessionCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage sessions",
	}
	cmd.AddCommand(newSessionCreateCmd(logger))
	return cmd
}

func newSessionCreateCmd(logger *slog.Logger) *cobra.Command {
	var draft session.Draft
	var confKey string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session in a conference",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, logger)
			if err != nil {
				return err
			}
			ctx, err := actingContext(cmd)
			if err != nil {
				return err
			}

			sess, err := a.service.CreateSession(ctx, confKey, draft)
			if err != nil {
				return err
			}
			return printSessions(cmd, []entity.Session{sess})
		},
	}

	cmd.Flags().StringVar(&confKey, "conference", "", "parent conference key")
	cmd.Flags().StringVar(&draft.Name, "name", "", "session name")
	cmd.Flags().StringVar(&draft.Speaker, "speaker", "", "speaker name")
	cmd.Flags().StringVar(&draft.Duration, "duration", "", "duration, free-form")
	cmd.Flags().StringSliceVar(&draft.Highlights, "highlight", nil, "highlight (repeatable)")
	cmd.Flags().StringSliceVar(&draft.TypeOfSession, "type", nil, "session type tag (repeatable)")
	cmd.Flags().StringVar(&draft.Date, "date", "", "date, YYYY-MM-DD")
	cmd.Flags().StringVar(&draft.StartTime, "start-time", "", `start time, 12-hour clock ("7 30 PM")`)
	_ = cmd.MarkFlagRequired("conference")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSessionsCmd(logger *slog.Logger) *cobra.Command {
	var typeTag string

	cmd := &cobra.Command{
		Use:   "sessions <conference-key>",
		Short: "List sessions in a conference, optionally by type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, logger)
			if err != nil {
				return err
			}

			if typeTag == "" {
				sessions, err := a.service.ConferenceSessions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printSessions(cmd, sessions)
			}

			t, err := entity.ParseSessionType(typeTag)
			if err != nil {
				return err
			}
			sessions, err := a.service.ConferenceSessionsByType(cmd.Context(), args[0], t)
			if err != nil {
				return err
			}
			return printSessions(cmd, sessions)
		},
	}
	cmd.Flags().StringVar(&typeTag, "type", "", "filter by session type tag")
	return cmd
}

func newSpeakerCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "speaker <name>",
		Short: "List a speaker's sessions across all conferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, logger)
			if err != nil {
				return err
			}
			sessions, err := a.service.SessionsBySpeaker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printSessions(cmd, sessions)
		},
	}
}
