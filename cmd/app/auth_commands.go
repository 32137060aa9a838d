package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/datashare/cmd/app/commands"
	"github.com/allisson/datashare/internal/app"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-client",
			Usage: "Create a client identity and print its one-time secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Human-readable client name",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the client can authenticate immediately",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					clientUseCase, err := container.ClientUseCase()
					if err != nil {
						return err
					}

					return commands.RunCreateClient(
						ctx,
						clientUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("name"),
						cmd.Bool("active"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
