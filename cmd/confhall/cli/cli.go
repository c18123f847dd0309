// Package cli implements the confhall command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"confhall/internal/auth"
	cachemem "confhall/internal/cache/memory"
	"confhall/internal/logging"
	"confhall/internal/session"
	storagemem "confhall/internal/storage/memory"
)

// app holds the wired-up service a command runs against.
type app struct {
	logger  *slog.Logger
	service *session.Service
	store   *storagemem.Engine
}

// New builds the root command.
func New(logger *slog.Logger, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "confhall",
		Short:         "Conference session query backend harness",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("fixture", "", "JSON fixture of conferences and sessions to seed")
	root.PersistentFlags().String("as", "", "acting user ID for mutations")
	root.PersistentFlags().String("token", "", "identity token for mutations (overrides --as)")
	root.PersistentFlags().String("secret", "", "HMAC secret for identity tokens")
	root.PersistentFlags().StringP("output", "o", "text", "output format: text or json")

	root.AddCommand(
		newQueryCmd(logger),
		newSessionCmd(logger),
		newSessionsCmd(logger),
		newSpeakerCmd(logger),
		newFeaturedCmd(logger),
		newTokenCmd(),
		newUserCmd(),
		newLoginCmd(),
	)
	return root
}

// newApp wires an in-memory engine and cache, seeding from the fixture
// when one is given.
func newApp(cmd *cobra.Command, logger *slog.Logger) (*app, error) {
	logger = logging.Default(logger)
	store := storagemem.NewEngine(logger)
	svc := session.NewService(store, cachemem.NewCache(), logger)
	a := &app{logger: logger, service: svc, store: store}

	path, _ := cmd.Flags().GetString("fixture")
	if path != "" {
		if err := a.seed(cmd.Context(), path); err != nil {
			return nil, fmt.Errorf("seed fixture %s: %w", path, err)
		}
	}
	return a, nil
}

// actingContext returns a context carrying the acting user's claims, from
// --token (verified against --secret) or --as.
func actingContext(cmd *cobra.Command) (context.Context, error) {
	ctx := cmd.Context()

	token, _ := cmd.Flags().GetString("token")
	if token != "" {
		secret, _ := cmd.Flags().GetString("secret")
		if secret == "" {
			return nil, fmt.Errorf("--token requires --secret")
		}
		claims, err := auth.NewTokenService([]byte(secret), time.Hour).Verify(token)
		if err != nil {
			return nil, fmt.Errorf("verify token: %w", err)
		}
		return auth.WithClaims(ctx, claims), nil
	}

	userID, _ := cmd.Flags().GetString("as")
	if userID == "" {
		return ctx, nil
	}
	claims := &auth.Claims{}
	claims.Subject = userID
	return auth.WithClaims(ctx, claims), nil
}
