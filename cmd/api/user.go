package main

import (
	"errors"

	"github.com/spf13/cobra"

	"task-api/configs"
	"task-api/internal/repository"
	"task-api/pkg/crypto"
	"task-api/pkg/database"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage login credentials",
}

var (
	newUsername string
	newPassword string
)

// There is no registration endpoint; users are seeded from here.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user with a bcrypt-hashed password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newUsername == "" || newPassword == "" {
			return errors.New("--username and --password are required")
		}

		cfg := configs.LoadConfig()
		db, err := database.ConnectDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		hash, err := crypto.HashPassword(newPassword)
		if err != nil {
			return err
		}
		id, err := repository.NewUserRepository(db).Create(cmd.Context(), newUsername, hash)
		if err != nil {
			return err
		}
		cmd.Printf("User %q created with id %d.\n", newUsername, id)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&newUsername, "username", "", "login name")
	userCreateCmd.Flags().StringVar(&newPassword, "password", "", "plaintext password, stored as a bcrypt hash")
	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
