package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"pricewatch/pkg/config"
	"pricewatch/pkg/notify"
	"pricewatch/pkg/scraper"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.App{
		Name:  "pricewatch",
		Usage: "check a product page once and email the recipient when the price hits the target",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Value:   "demo",
				Usage:   "configuration profile; loads .env.<profile>",
				EnvVars: []string{"PRICEWATCH_ENV"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("run aborted")
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env"), log.Logger)
	if err != nil {
		return err
	}

	s := scraper.New(cfg.ProductURL, cfg.Headers, cfg.HTTPTimeout, log.Logger)

	snap, err := s.Retrieve(c.Context, cfg.MaxRetries)
	if errors.Is(err, scraper.ErrExhausted) {
		// terminal but not fatal: the run completes with nothing to notify
		log.Error().Int("max_retries", cfg.MaxRetries).Msg("could not get product info, giving up")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("name", snap.Name).Msg("product name retrieved")
	log.Info().Stringer("price", snap.Price).Msg("product price retrieved")

	sender := &notify.SMTPSender{
		Addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		Username: cfg.Email,
		Password: cfg.Password,
	}
	n := notify.New(sender, cfg.Email, cfg.Recipient, cfg.TargetPrice, cfg.ProductURL, log.Logger)
	n.Evaluate(c.Context, snap)

	return nil
}
