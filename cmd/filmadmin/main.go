// Package main provides the filmadmin server and its maintenance commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "filmadmin",
		Version: version,
		Usage:   "Movie catalog administration backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML or JSON config file",
				Sources: cli.EnvVars("FILMADMIN_CONFIG_PATH"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			routesCommand(),
		},
		Action: runServe,
	}
}
