package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mantonx/filmadmin/internal/server"
	"github.com/urfave/cli/v3"
)

func routesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "Print the HTTP API routes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer closeDB(db)

			srv, err := server.New(cfg, db, modules())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			for _, r := range srv.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Path, r.Description)
			}
			return w.Flush()
		},
	}
}
