package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	errors "github.com/frahmantamala/leave-management/internal"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	"github.com/frahmantamala/leave-management/internal/user"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Create the bootstrap admin account",
		Long:  `Create an ADMIN account so that pending leave requests can be reviewed. Existing accounts are left untouched.`,
		RunE:  runSeed,
	}
	seedUsername string
	seedPassword string
)

func init() {
	seedCmd.Flags().StringVarP(&seedUsername, "username", "u", "admin", "admin username")
	seedCmd.Flags().StringVarP(&seedPassword, "password", "p", "", "admin password (required)")
	_ = seedCmd.MarkFlagRequired("password")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	storage, err := openStorage(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer storage.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	users := user.NewService(storage.Users, cfg.Security.BCryptCost, log)
	_, err = users.Register(ctx, user.RegisterDTO{
		Username: seedUsername,
		Password: seedPassword,
		Role:     string(coreuser.RoleAdmin),
	})
	switch {
	case err == nil:
		fmt.Println("Seeded admin user:", seedUsername)
	case stderrors.Is(err, errors.ErrAlreadyExists):
		fmt.Println("admin user already exists:", seedUsername)
	default:
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}
