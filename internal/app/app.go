package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/EpicMandM/hotel-frontdesk/internal/config"
	"github.com/EpicMandM/hotel-frontdesk/internal/desk"
	"github.com/EpicMandM/hotel-frontdesk/internal/handler"
	"github.com/EpicMandM/hotel-frontdesk/internal/logger"
	"github.com/EpicMandM/hotel-frontdesk/internal/service"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	feature *config.FeatureConfig
	client  *service.Client
	desk    *desk.Desk
	logger  *logger.Logger
	output  io.Writer
}

func New(cfg *config.Config, feature *config.FeatureConfig, log *logger.Logger, output io.Writer) *App {
	if feature == nil {
		feature = config.DefaultFeatureConfig()
	}
	if log == nil {
		log = logger.Discard()
	}
	if output == nil {
		output = io.Discard
	}
	return &App{
		config:  cfg,
		feature: feature,
		logger:  log,
		output:  output,
	}
}

// Initialize builds the backend client and the desk.
func (a *App) Initialize(ctx context.Context) error {
	if a.config == nil {
		return fmt.Errorf("config is required")
	}
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger.SetDebug(a.config.Debug)
	httpClient := service.NewHTTPClient(a.config.APITimeout, a.config.APIInsecure)
	a.client = service.NewClient(a.config.APIURL, httpClient, a.logger)
	a.desk = desk.New(a.client, a.feature, a.logger)

	a.logger.Info("Front desk ready",
		logger.Action("startup"),
		logger.F("BACKEND", a.config.APIURL),
		logger.Mode(a.feature.Invoice.Emission))
	return nil
}

// Desk returns the page factory, or nil before Initialize.
func (a *App) Desk() *desk.Desk {
	return a.desk
}

// Output is where command results are rendered.
func (a *App) Output() io.Writer {
	return a.output
}

// Handler returns the JSON gateway.
func (a *App) Handler() (http.Handler, error) {
	if a.desk == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return handler.NewAPIHandler(a.desk, a.logger).Routes(), nil
}

// Serve runs the gateway on addr until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	h, err := a.Handler()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = a.feature.Gateway.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Gateway listening", logger.Action("serve"), logger.F("ADDR", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("gateway failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down gateway: %w", err)
		}
		a.logger.Info("Gateway stopped", logger.Action("serve"), logger.Status("stopped"))
		return nil
	}
}

func (a *App) Close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	a.client.CloseIdleConnections()
	a.logger.Debug("Released backend connections")
	return nil
}
