package main

import (
	"context"
	"fmt"
	"log"
	"os"
	_ "time/tzdata"

	"github.com/SimpleYM/SimpleYM-Backend/src/config"
	"github.com/SimpleYM/SimpleYM-Backend/src/db"
	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/SimpleYM/SimpleYM-Backend/src/seed"
	"github.com/SimpleYM/SimpleYM-Backend/src/services"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "init_user",
		Short:         "SimpleYM database and account setup",
		SilenceUsage:  true,
	}
	root.AddCommand(newMigrateCommand(), newSeedCommand(), newCreateUserCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table and the moves change trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := connect()
			return err
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the configured admin account and yard locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := connect()
			if err != nil {
				return err
			}
			seed.Seed(database, seed.Admin{
				Email:    cfg.Seed.AdminEmail,
				Password: cfg.Seed.AdminPassword,
				Name:     cfg.Seed.AdminName,
			}, cfg.App.Locations)
			return nil
		},
	}
}

func newCreateUserCommand() *cobra.Command {
	var req models.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := connect()
			if err != nil {
				return err
			}
			users := services.NewUserService(services.NewGormUserStore(database), cfg.Auth.TokenTTL)
			res, err := users.CreateUser(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Role, "role", string(models.RoleYard), "admin, yard or loader")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func connect() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	database, err := db.Connect(cfg.DB.DSN)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := db.Migrate(database, services.Models()...); err != nil {
		return cfg, nil, fmt.Errorf("failed to migrate: %w", err)
	}
	log.Println("Schema is up to date")
	return cfg, database, nil
}
