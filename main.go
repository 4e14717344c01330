package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lightbridge/adapters"
	"lightbridge/api"
	"lightbridge/application"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var Flags = []cli.Flag{
	FlagLogLevel,
	FlagLogWriter,
	FlagHTTPAddr,
	FlagMQTTUrl,
	FlagMQTTPort,
	FlagMQTTClientID,
	FlagMQTTUsername,
	FlagMQTTPassword,
	FlagDBPath,
	FlagJWTSecret,
	FlagDeviceURL,
}

func main() {
	var logger zerolog.Logger

	app := cli.App{
		Name:    "lightbridge",
		Version: "v0.1.0",
		Flags:   Flags,
		Before: func(ctx *cli.Context) error {
			var logWriter io.Writer
			if ctx.String(FlagLogWriter.Name) == "console" {
				logWriter = zerolog.ConsoleWriter{
					Out:        os.Stderr,
					TimeFormat: time.RFC3339Nano,
				}
			} else if ctx.String(FlagLogWriter.Name) == "json" {
				logWriter = os.Stderr
			}

			logger = zerolog.New(logWriter).With().Timestamp().
				Str("service", "lightbridge").
				Str("module", "main").
				Logger()

			level, err := zerolog.ParseLevel(ctx.String(FlagLogLevel.Name))
			if err != nil {
				return err
			}

			zerolog.SetGlobalLevel(level)

			return nil
		},
		Action: func(ctx *cli.Context) error {
			logger.Info().Msg("service starting...")

			appCtx, cancel := context.WithCancel(logger.WithContext(context.Background()))
			defer cancel()
			go func() {
				c := make(chan os.Signal, 1)
				signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

				<-c

				logger.Warn().Msg("interrupt signal received")
				cancel()
			}()

			db, err := adapters.OpenDB(ctx.String(FlagDBPath.Name))
			if err != nil {
				return err
			}
			defer db.Close()

			userStore := adapters.NewUserStore(db)
			roleStore := adapters.NewRoleStore(db)
			reviewStore := adapters.NewReviewStore(db)

			authService, err := application.NewAuthService(application.AuthServiceParams{
				Users:     userStore,
				Roles:     roleStore,
				JWTSecret: ctx.String(FlagJWTSecret.Name),
				Log:       logger.With().Str("module", "auth").Logger(),
			})
			if err != nil {
				return err
			}

			brokerURL := adapters.NormalizeBrokerURL(
				ctx.String(FlagMQTTUrl.Name), ctx.Int(FlagMQTTPort.Name))
			logger.Info().Msgf("broker endpoint: %s", brokerURL)

			mqttClient := adapters.NewMQTTClient(adapters.MQTTClientParams{
				ClientID: ctx.String(FlagMQTTClientID.Name),
				Username: ctx.String(FlagMQTTUsername.Name),
				Password: ctx.String(FlagMQTTPassword.Name),
				MQTTUrl:  brokerURL,
				Log:      logger.With().Str("module", "mqtt-client").Logger(),
			})

			bridgeService, err := application.NewBridgeService(application.BridgeServiceParams{
				MQTTClient: mqttClient,
				Topics:     application.DefaultTopics(),
				Log:        logger.With().Str("module", "bridge").Logger(),
			})
			if err != nil {
				return err
			}

			motionService := application.NewMotionService(
				logger.With().Str("module", "motion").Logger())

			var deviceClient application.DeviceWebClient
			if deviceURL := ctx.String(FlagDeviceURL.Name); deviceURL != "" {
				deviceClient = adapters.NewDeviceWebClient(deviceURL)
			} else {
				logger.Warn().Msg("device-url not set, /led polling routes disabled")
			}

			server, err := api.NewServer(api.ServerParams{
				Addr:    ctx.String(FlagHTTPAddr.Name),
				Bridge:  bridgeService,
				Auth:    authService,
				Roles:   roleStore,
				Reviews: reviewStore,
				Device:  deviceClient,
				Motion:  motionService,
				Log:     logger.With().Str("module", "api").Logger(),
			})
			if err != nil {
				return err
			}

			logger.Info().Msg("service started")

			g, runCtx := errgroup.WithContext(appCtx)
			g.Go(func() error { return bridgeService.Run(runCtx) })
			g.Go(func() error { return server.Run(runCtx) })
			if err := g.Wait(); err != nil {
				return err
			}

			logger.Info().Msg("service terminating...")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Err(err).Msg("service terminated")
	}
}
