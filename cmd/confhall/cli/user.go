package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"confhall/internal/auth"
)

// errBadCredentials covers both an unknown user and a wrong password, so
// login failures do not reveal which part was wrong.
var errBadCredentials = errors.New("unknown user or wrong password")

// userRecord is one entry of the local user registry. The password is
// stored only as its argon2id PHC hash.
type userRecord struct {
	UserID       string `json:"userId"`
	DisplayName  string `json:"displayName,omitempty"`
	PasswordHash string `json:"passwordHash"`
}

type userRegistry map[string]userRecord

// loadRegistry reads the registry file. A missing file is an empty
// registry, so the first "user add" needs no setup step.
func loadRegistry(path string) (userRegistry, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return userRegistry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var reg userRegistry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("parse user registry %s: %w", path, err)
	}
	if reg == nil {
		reg = userRegistry{}
	}
	return reg, nil
}

func saveRegistry(path string, reg userRegistry) error {
	raw, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user registry: %w", err)
	}
	return os.WriteFile(path, raw, 0o600)
}

// addUser hashes the password and upserts the user into the registry file.
func addUser(path, userID, displayName, password string) error {
	if userID == "" || password == "" {
		return fmt.Errorf("user ID and password are required")
	}
	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	reg[userID] = userRecord{UserID: userID, DisplayName: displayName, PasswordHash: hash}
	return saveRegistry(path, reg)
}

// authenticate verifies the password against the registry entry.
func authenticate(path, userID, password string) (userRecord, error) {
	reg, err := loadRegistry(path)
	if err != nil {
		return userRecord{}, err
	}
	rec, ok := reg[userID]
	if !ok {
		return userRecord{}, errBadCredentials
	}
	match, err := auth.VerifyPassword(password, rec.PasswordHash)
	if err != nil {
		return userRecord{}, fmt.Errorf("verify password for %q: %w", userID, err)
	}
	if !match {
		return userRecord{}, errBadCredentials
	}
	return rec, nil
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the local user registry",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var registry, password, displayName string

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Add or update a registry user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := addUser(registry, args[0], displayName, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "user stored:", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&registry, "registry", "confhall-users.json", "user registry file")
	cmd.Flags().StringVar(&password, "password", "", "password to hash and store")
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var registry, password string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "login <user-id>",
		Short: "Verify registry credentials and issue an identity token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			rec, err := authenticate(registry, args[0], password)
			if err != nil {
				return err
			}
			token, expiresAt, err := auth.NewTokenService([]byte(secret), ttl).Issue(rec.UserID, rec.DisplayName)
			if err != nil {
				return err
			}
			fmt.Println(token)
			fmt.Fprintln(cmd.ErrOrStderr(), "expires:", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&registry, "registry", "confhall-users.json", "user registry file")
	cmd.Flags().StringVar(&password, "password", "", "password to verify")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
