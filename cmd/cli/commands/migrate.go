package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Postgres == nil {
				return fmt.Errorf("migrate needs the postgres store backend (store.backend is %q)", app.Cfg.Store.Backend)
			}

			applied, err := app.Postgres.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Printf("\n✅ Database is up to date\n\n")
				return nil
			}

			fmt.Printf("\n✅ Applied %d migration(s):\n", len(applied))
			for _, name := range applied {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println()
			return nil
		},
	}
}
