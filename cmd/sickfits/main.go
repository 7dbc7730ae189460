package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ccfreem/sickfits/internal/appcontext"
	"github.com/ccfreem/sickfits/internal/config"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up application")
	}
	logger := app.Logger

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%s", app.Cf.GrpcPort))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to listen for gRPC")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", app.HttpServer.Addr).Msg("HTTP server starting")
		if err := app.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info().Str("addr", grpcListener.Addr().String()).Msg("gRPC server starting")
		if err := app.GrpcServer.Serve(grpcListener); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		app.CheckoutResumer.Run(gctx)
		return nil
	})

	// first signal or first server failure
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("closed completed")
}
