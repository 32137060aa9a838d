package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/datashare/cmd/app/commands"
	"github.com/allisson/datashare/internal/app"
	"github.com/allisson/datashare/internal/config"
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
			Name:  "migrate",
			Usage: "Create the storage schema for the postgres and mysql drivers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Verify the signature of every audit log entry",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					auditLogUseCase, err := container.AuditLogUseCase()
					if err != nil {
						return err
					}

					return commands.RunVerifyAuditLogs(
						ctx,
						auditLogUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("format"),
					)
				})
			},
		},
	}
}
