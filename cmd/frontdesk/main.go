package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/EpicMandM/hotel-frontdesk/internal/app"
	"github.com/EpicMandM/hotel-frontdesk/internal/config"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type App struct {
	ctx     context.Context
	logger  *logger.Logger
	out     io.Writer
	printer *message.Printer
	core    *app.App
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &App{
		ctx:    ctx,
		logger: logger.NewWithWriter(os.Stderr),
		out:    os.Stdout,
	}

	if err := a.run(os.Args[1:]); err != nil {
		a.logger.Error("Application error", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func (a *App) run(args []string) error {
	if len(args) == 0 {
		printUsage(a.out)
		return fmt.Errorf("no command given")
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(a.out)
		return nil
	}

	if err := a.initialize(); err != nil {
		return err
	}
	defer func() {
		if err := a.core.Close(a.ctx); err != nil {
			a.logger.Error("Failed to close backend client", logger.Error(err))
		}
	}()

	return a.dispatch(args)
}

func (a *App) initialize() error {
	configPath := getEnvOrDefault("CONFIG_PATH", "./data/frontdesk.toml")
	featureCfg, err := config.LoadFeatureConfig(configPath)
	if err != nil {
		a.logger.Error("Failed to load feature config", logger.Error(err), logger.F("path", configPath))
		return err
	}

	envPath := getEnvOrDefault("ENV_FILE", ".env")
	infraCfg, err := config.LoadWithFile(envPath)
	if err != nil {
		a.logger.Error("Failed to load infrastructure config", logger.Error(err), logger.F("path", envPath))
		return err
	}

	a.printer = newPrinter(getEnvOrDefault("FRONTDESK_LANG", "es-AR"))
	a.core = app.New(infraCfg, featureCfg, a.logger, a.out)
	return a.core.Initialize(a.ctx)
}

func newPrinter(tag string) *message.Printer {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.Spanish
	}
	return message.NewPrinter(lang)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
