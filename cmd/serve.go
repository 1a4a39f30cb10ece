package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/techrelay/internal/adapters/transport/bridge"
	"github.com/bnema/techrelay/internal/application"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/bnema/techrelay/internal/metrics"
	"github.com/bnema/techrelay/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the relay until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, state.app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runServe(ctx context.Context, app *app, in io.Reader, out io.Writer) error {
	if app.routes.Len() == 0 {
		return errors.New("no routes configured")
	}

	logger, err := logging.New(app.config.GetString(keyLogLevel), app.config.GetString(keyLogFormat))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar().Named("relay")

	link, err := openLink(app, in, out, logger)
	if err != nil {
		return err
	}

	br := bridge.New(link, bridge.WithContacts(app.contacts), bridge.WithLogger(log.Named("bridge")))
	store := application.OpenTrackingStore(ctx, app.repo, log.Named("store"))
	router := application.NewRouter(app.routes, store, br, br, ports.SystemClock{}, log.Named("router"))
	escalator := application.NewEscalator(store, br,
		application.WithSweepInterval(app.tick),
		application.WithSLAPolicy(app.policy),
		application.WithEscalatorLogger(log.Named("escalator")),
	)

	metricsServer := startMetricsServer(app.config.GetString(keyMetricsAddr), log)

	log.Infow("Relay started",
		"routes", app.routes.Len(),
		"store", app.repo.Path(),
		"transport", app.config.GetString(keyTransportKind))

	go escalator.Run(ctx)
	runErr := br.Run(ctx, router)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	escalator.Stop(shutdownCtx)
	if err := link.Close(); err != nil {
		log.Warnw("Failed to close bridge link", "error", err)
	}
	store.Close()
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warnw("Failed to stop metrics server", "error", err)
		}
	}
	log.Info("Relay stopped")

	return runErr
}

func openLink(app *app, in io.Reader, out io.Writer, logger *zap.Logger) (bridge.Link, error) {
	switch kind := app.config.GetString(keyTransportKind); kind {
	case transportStdio, "":
		return bridge.NewLineLink(in, out), nil
	case transportKafka:
		link, err := bridge.NewKafkaLink(bridge.KafkaLinkConfig{
			Brokers:       app.config.GetStringSlice(keyKafkaBrokers),
			EventsTopic:   app.config.GetString(keyKafkaEvents),
			CommandsTopic: app.config.GetString(keyKafkaCommands),
			GroupID:       app.config.GetString(keyKafkaGroup),
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open kafka link: %w", err)
		}
		return link, nil
	default:
		return nil, fmt.Errorf("unsupported transport %q", kind)
	}
}

func startMetricsServer(addr string, log *zap.SugaredLogger) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	log.Infow("Metrics server listening", "addr", addr)
	return srv
}
