package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"frostcast/config"
	v1 "frostcast/internal/controllers/http/v1"
	"frostcast/internal/repositories"
	"frostcast/internal/services/frost"
	"frostcast/pkg/httpserver"
	"frostcast/pkg/observe"
)

// @title Frostcast API
// @version 1.0.0
// @description Windscreen condition prediction service: merges observed and forecast
// @description morning weather into an 11-day timeline and labels each day clear, fog,
// @description frost or ice with a per-vehicle departure buffer.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Report
// @tag.description Windscreen report operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf := config.NewConfig()

	var logWriters []io.Writer
	if cnf.SentryDSN != "" {
		hook, err := observe.NewSentryHook(cnf.AppEnv, cnf.AppName, cnf.SentryDSN, cnf.IsDevelopment())
		if err != nil {
			fmt.Println("sentry disabled:", err)
		} else {
			logWriters = append(logWriters, hook)
		}
	}

	l := observe.NewZapLogger(cnf.AppName, logWriters...)

	app := httpserver.InitFiberServer(cnf.AppName)

	repos := repositories.InitWeatherRepositories(cnf, l)

	geo := repositories.NewSearchRepository("", "", l, http.DefaultClient)

	service := frost.NewService(repos, geo, cnf.HistoryDays, cnf.ForecastDays, l)

	v1.NewRouter(
		app,
		service,
		cnf,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
