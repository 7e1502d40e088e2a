// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/climabill/climabill/internal/authorization"
	"github.com/climabill/climabill/internal/config"
	"github.com/climabill/climabill/internal/db"
	"github.com/climabill/climabill/internal/gateway"
	"github.com/climabill/climabill/internal/logging"
	"github.com/climabill/climabill/internal/monitoring/prometheus"
	"github.com/climabill/climabill/internal/storage"
	"github.com/climabill/climabill/internal/tracing"
	"github.com/climabill/climabill/pkg/audit"
	"github.com/climabill/climabill/pkg/authentication"
	"github.com/climabill/climabill/pkg/ratelimit"
	"github.com/climabill/climabill/pkg/token"
	"github.com/climabill/climabill/pkg/validation"
	"github.com/climabill/climabill/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("climabill", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()

	store := storage.NewStorage(dbClient, tracer, monitor, logger)
	gw := gateway.NewGateway(dbClient, tracer, monitor, logger)
	recorder := audit.NewRecorder(store, tracer, monitor, logger)
	authorizer := authorization.NewAuthorizer(tracer, monitor, logger)

	tokenService := token.NewService(
		[]byte(specs.JWTSecret),
		specs.AccessTokenTTL,
		specs.RefreshTokenTTL,
		tracer, monitor, logger,
	)
	authService := authentication.NewService(
		store,
		tokenService,
		tokenService,
		specs.AccessTokenTTL,
		tracer, monitor, logger,
	)

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), nil, tracer, monitor, logger)

	router := web.NewRouter(
		web.RouterConfig{
			Gateway:        gw,
			AuthService:    authService,
			Authorizer:     authorizer,
			Recorder:       recorder,
			Limiter:        limiter,
			Validator:      validation.NewValidator(),
			DBClient:       dbClient,
			MaxRequestSize: specs.MaxRequestSize,
			CORSOrigins:    specs.CORSAllowedOrigins,
		},
		tracer, monitor, logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
