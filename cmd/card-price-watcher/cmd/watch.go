package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/card-price-watcher/internal/api"
	"github.com/donaldgifford/card-price-watcher/internal/cardtrader"
	"github.com/donaldgifford/card-price-watcher/internal/config"
	"github.com/donaldgifford/card-price-watcher/internal/engine"
	"github.com/donaldgifford/card-price-watcher/internal/notify"
	"github.com/donaldgifford/card-price-watcher/internal/telemetry"
	"github.com/donaldgifford/card-price-watcher/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 30 * time.Second
)

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "card-price-watcher",
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
		SampleRatio:    cfg.Telemetry.SampleRatio,
		ExportMetrics:  cfg.Telemetry.ExportMetrics,
		MetricInterval: cfg.Telemetry.MetricInterval,
	}, log)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	notifier, err := buildNotifier(cfg, log)
	if err != nil {
		return fmt.Errorf("configuring notifications: %w", err)
	}

	client := cardtrader.NewClient(cfg.BearerToken,
		cardtrader.WithBaseURL(cfg.CardTrader.BaseURL),
		cardtrader.WithUserAgent(userAgent()),
		cardtrader.WithHTTPClient(&http.Client{Timeout: cfg.CardTrader.Timeout}),
	)

	watcher := engine.NewWatcher(client, notifier,
		cfg.Targets(),
		engine.NewCountryBlacklist(cfg.SellerCountryBlacklist),
		engine.WithLogger(log),
		engine.WithAPISpacing(cfg.APISpacingDuration()),
		engine.WithDeliveryTimeout(cfg.Notifications.Timeout),
	)

	sched, err := engine.NewScheduler(watcher, cfg.IntervalDuration(), log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	var srv *echo.Echo
	if cfg.Server.Enabled {
		srv = startServer(cfg, log, watcher, sched)
	}

	log.Info("watching marketplace",
		"version", Version,
		"targets", len(watcher.Targets()),
		"interval", cfg.IntervalDuration(),
		"api_spacing", cfg.APISpacingDuration(),
		"blacklist", cfg.SellerCountryBlacklist,
	)

	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("running scheduler: %w", err)
	}

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn("shutting down status server failed", "error", err)
		}
	}

	dctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := watcher.Wait(dctx); err != nil {
		log.Warn("pending notifications abandoned", "error", err)
	}

	log.Info("watcher stopped")
	return nil
}

func startServer(cfg *config.Config, log *slog.Logger, w *engine.Watcher, s *engine.Scheduler) *echo.Echo {
	e := api.NewServer(log, Version, w, s)
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	log.Info("starting status server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("status server error", "error", err)
		}
	}()

	return e
}

// buildNotifier assembles every configured delivery backend. With none
// configured, changes are only logged.
func buildNotifier(cfg *config.Config, log *slog.Logger) (notify.Notifier, error) {
	var backends []notify.Backend

	if cfg.Email != nil {
		n, err := notify.NewEmailNotifier(notify.EmailConfig{
			RelayHost: cfg.Email.RelayHost,
			Port:      cfg.Email.Port,
			Username:  cfg.Email.Username,
			Password:  cfg.Email.Password,
			From:      cfg.Email.From,
			To:        cfg.Email.To,
		})
		if err != nil {
			return nil, err
		}
		backends = append(backends, notify.Backend{Name: "email", Notifier: n})
	}

	nc := cfg.Notifications
	if nc.Discord.Enabled {
		backends = append(backends, notify.Backend{
			Name:     "discord",
			Notifier: notify.NewDiscordNotifier(nc.Discord.WebhookURL),
		})
	}
	if nc.Telegram.Enabled {
		n, err := notify.NewTelegramNotifier(nc.Telegram.Token, nc.Telegram.ChatID)
		if err != nil {
			return nil, err
		}
		backends = append(backends, notify.Backend{Name: "telegram", Notifier: n})
	}
	if nc.Pushover.Enabled {
		backends = append(backends, notify.Backend{
			Name:     "pushover",
			Notifier: notify.NewPushoverNotifier(nc.Pushover.AppToken, nc.Pushover.UserKey),
		})
	}

	if len(backends) == 0 {
		log.Info("no notification backend configured, changes are only logged")
		return notify.NewNoOpNotifier(log), nil
	}

	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name)
	}
	log.Info("notification backends configured", "backends", names)

	return notify.NewMultiNotifier(backends...), nil
}
