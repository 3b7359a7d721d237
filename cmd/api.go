package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/legalreview/internal/api"
	"github.com/legalreview/internal/config"
	"github.com/legalreview/internal/database"
	"github.com/legalreview/internal/logging"
	"github.com/legalreview/internal/review"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Start the LegalReview API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "Run with the in-memory registry instead of Postgres",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logging.Setup(cfg.Log.Level)

			port := cfg.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			var store review.Store
			if c.Bool("in-memory") || cfg.Database.URL == "" {
				log.Info().Msg("Using in-memory document registry")
				store = review.NewInMemoryStore()
			} else {
				db, err := database.NewDB(cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer db.Close()
				pg := review.NewPostgresStore(db)
				if err := pg.EnsureSchema(context.Background()); err != nil {
					return fmt.Errorf("failed to ensure schema: %w", err)
				}
				log.Info().Msg("Using Postgres document registry")
				store = pg
			}

			svc := review.NewService(store)

			log.Info().Int("port", port).Msg("Starting LegalReview API server")
			server := api.NewServer(port, svc)
			return server.Start()
		},
	}
}
