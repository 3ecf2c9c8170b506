package main

import (
	"github.com/spf13/cobra"

	"task-api/configs"
	"task-api/internal/repository"
	"task-api/pkg/database"
)

var dropTables bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users and tasks tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.LoadConfig()
		db, err := database.ConnectDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if dropTables {
			if err := repository.DeleteAllTable(cmd.Context(), db); err != nil {
				return err
			}
			cmd.Println("Tables 'tasks' and 'users' dropped.")
			return nil
		}
		if err := repository.CreateTableIfNotExists(cmd.Context(), db); err != nil {
			return err
		}
		cmd.Println("Tables 'tasks' and 'users' are ready.")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&dropTables, "drop", false, "drop the tables instead of creating them")
	rootCmd.AddCommand(migrateCmd)
}
