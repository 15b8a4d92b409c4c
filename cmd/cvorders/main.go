package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI().Run(withDefaultCommand(os.Args)); err != nil {
		fmt.Fprintf(os.Stderr, "cvorders: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "cvorders",
		Usage: "CV writing order service",
		Commands: []*cli.Command{
			{
				Name:            "serve",
				Usage:           "run the HTTP API and payment reconciliation worker",
				SkipFlagParsing: true,
				Action: func(c *cli.Context) error {
					return serve(c.Context, c.Args().Slice())
				},
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back the database schema",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "database-uri",
						Aliases:  []string{"d"},
						Usage:    "PostgreSQL DSN",
						EnvVars:  []string{"DATABASE_URI"},
						Required: true,
					},
				},
				Subcommands: []*cli.Command{
					{Name: "up", Usage: "apply all migrations", Action: migrateAction(migrateUp)},
					{Name: "down", Usage: "roll back all migrations", Action: migrateAction(migrateDown)},
				},
			},
		},
	}
}

// withDefaultCommand runs serve when no command is named.
func withDefaultCommand(args []string) []string {
	if len(args) < 2 || (strings.HasPrefix(args[1], "-") && args[1] != "-h" && args[1] != "--help") {
		out := make([]string, 0, len(args)+1)
		out = append(out, args[0], "serve")
		if len(args) > 1 {
			out = append(out, args[1:]...)
		}
		return out
	}
	return args
}
