package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/datashare/cmd/app/commands"
	"github.com/allisson/datashare/internal/app"
)

func getRegistryCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "initialize",
			Usage: "Set the registry administrator (once per store)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "admin",
					Required: true,
					Usage:    "Client ID (UUID) of the administrator",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					registryUseCase, err := container.RegistryUseCase()
					if err != nil {
						return err
					}

					return commands.RunInitialize(
						ctx,
						registryUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("admin"),
					)
				})
			},
		},
		{
			Name:  "system-stats",
			Usage: "Print the number of NFTs and the total read count",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					analyticsUseCase, err := container.AnalyticsUseCase()
					if err != nil {
						return err
					}

					return commands.RunSystemStats(ctx, analyticsUseCase, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "verify-integrity",
			Usage: "Report whether an NFT is registered and holds data in each tier",
			Flags: []cli.Flag{
				&cli.Uint32Flag{
					Name:     "id",
					Required: true,
					Usage:    "NFT id",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					analyticsUseCase, err := container.AnalyticsUseCase()
					if err != nil {
						return err
					}

					return commands.RunVerifyIntegrity(
						ctx,
						analyticsUseCase,
						commands.DefaultIO().Writer,
						cmd.Uint32("id"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
