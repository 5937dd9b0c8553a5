package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"quill/internal/model/auth"
	"quill/internal/pkg/id"
	"quill/internal/pkg/mongodb"
	"quill/internal/pkg/password"
	authrepo "quill/internal/repository/auth"
)

var initAdminCmd = &cobra.Command{
	Use:   "init-admin",
	Short: "Seed an admin account",
	Long: `Create the initial admin account if it does not exist yet.
Credentials are taken from QUILL_ADMIN_USERNAME / QUILL_ADMIN_EMAIL /
QUILL_ADMIN_PASSWORD, with development defaults.`,
	RunE: runInitAdmin,
}

func init() {
	rootCmd.AddCommand(initAdminCmd)
}

func runInitAdmin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	client, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	ctx := context.Background()
	defer func() {
		_ = client.Close(ctx)
	}()

	userRepo := authrepo.NewUserRepo(client.Database())

	username := os.Getenv("QUILL_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("QUILL_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	plain := os.Getenv("QUILL_ADMIN_PASSWORD")
	if plain == "" {
		plain = "admin123"
		log.Warn().Msg("QUILL_ADMIN_PASSWORD not set, using default (NOT SECURE for production)")
	}

	if existing, _ := userRepo.FindByEmail(ctx, email); existing != nil {
		log.Info().Str("email", email).Msg("admin account already exists, nothing to do")
		return nil
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &auth.User{
		ID:       id.New(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     auth.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().
		Str("user_id", admin.ID).
		Str("username", username).
		Str("email", email).
		Msg("admin account created")
	return nil
}
