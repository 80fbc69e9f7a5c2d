package main

import (
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var adminFlags struct {
	email    string
	name     string
	password string
}

// kiddocorner create-admin --email a@b.c [--password ...]
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or promote an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		if err := a.MigrateAndSeed(cmd.Context()); err != nil {
			return err
		}
		u, err := a.AuthUC.EnsureAdmin(cmd.Context(), adminFlags.email, adminFlags.name, adminFlags.password)
		if err != nil {
			return err
		}
		zlog.Info().Str("email", u.Email).Bool("password", u.PasswordHash != "").Msg("admin ready")
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.email, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminFlags.name, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminFlags.password, "password", "", "password; leave empty for Google-only sign in")
	_ = createAdminCmd.MarkFlagRequired("email")
}
