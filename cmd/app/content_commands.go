package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/quran-gateway/cmd/app/commands"
	"github.com/allisson/quran-gateway/internal/app"
	"github.com/allisson/quran-gateway/internal/config"
)

func getContentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "chapters",
			Usage: "List every chapter and the source that served the list",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.Resolver()
				if err != nil {
					return err
				}

				return commands.RunChapters(
					ctx,
					resolver,
					container.Logger(),
					os.Stdout,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verse-audio",
			Usage: "Print the per-verse audio URLs of a chapter",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "reciter",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Reciter id",
				},
				&cli.IntFlag{
					Name:     "chapter",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Chapter number (1-114)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				resolver, err := container.Resolver()
				if err != nil {
					return err
				}

				return commands.RunVerseAudio(
					ctx,
					resolver,
					container.Logger(),
					os.Stdout,
					int(cmd.Int("reciter")),
					int(cmd.Int("chapter")),
					cmd.String("format"),
				)
			},
		},
	}
}
