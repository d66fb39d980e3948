package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/dal/rabbitmq"
	outboxrepo "github.com/wareline/shipping-svc/internal/dal/repositories/outbox/postgres"
	"github.com/wareline/shipping-svc/internal/jaeger"
	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/services/shippingsvc"
	httptransport "github.com/wareline/shipping-svc/internal/transport/http"
	outboxworker "github.com/wareline/shipping-svc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	shippingSvc    *shippingsvc.ShippingService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	tracerProvider *sdktrace.TracerProvider
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracerProvider := mustSetupTracing()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	shippingSvc := shippingsvc.MustNewShippingService(
		shippingsvc.WithPostgresClient(postgresClient),
		shippingsvc.WithAddressValidator(address.NewValidator(addressRulesFromConfig())),
		shippingsvc.WithHomeCountry(viper.GetString("shipping.home_country")),
	)

	transport := httptransport.NewHTTPTransport(shippingSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool()),
		rabbitClient,
	)

	return &App{
		shippingSvc:    shippingSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxWorker,
		tracerProvider: tracerProvider,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.tracerProvider.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

func mustSetupTracing() *sdktrace.TracerProvider {
	exporter := jaeger.MustNewJaeger()

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("shipping-svc"),
		)),
	)
	otel.SetTracerProvider(tracerProvider)

	return tracerProvider
}

// addressRulesFromConfig compiles per-field address patterns from the config
// file. An empty section falls back to the built-in rule set.
func addressRulesFromConfig() address.Rules {
	raw := viper.GetStringMapString("shipping.address.rules")
	if len(raw) == 0 {
		return nil
	}

	rules := make(address.Rules, len(raw))
	for field, pattern := range raw {
		re, err := regexp.Compile(pattern)
		if err != nil {
			panic("invalid address rule for field " + field + ": " + err.Error())
		}
		rules[field] = re
	}

	return rules
}
