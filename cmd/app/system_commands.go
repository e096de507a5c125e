package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/quran-gateway/cmd/app/commands"
	"github.com/allisson/quran-gateway/internal/app"
	"github.com/allisson/quran-gateway/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "status",
			Usage: "Check whether the content API accepts the configured credentials",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.Resolver()
				if err != nil {
					return err
				}

				return commands.RunStatus(
					ctx,
					resolver,
					container.Logger(),
					os.Stdout,
					cmd.String("format"),
				)
			},
		},
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
