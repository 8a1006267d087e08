package main

import (
	"context"

	"github.com/mantonx/filmadmin/internal/logger"
	"github.com/urfave/cli/v3"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema and exit",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := modules().MigrateAll(db); err != nil {
				return err
			}
			logger.Info("schema migrated")
			return nil
		},
	}
}
