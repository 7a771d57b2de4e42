package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/snarg/langdetect/internal/api"
	"github.com/snarg/langdetect/internal/config"
	"github.com/snarg/langdetect/internal/detect"
	"github.com/snarg/langdetect/internal/metrics"
)

var version = "dev"

func main() {
	startTime := time.Now()

	envFile := flag.String("env-file", "", "path to .env file")
	httpAddr := flag.String("http-addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	logLevel := flag.String("log-level", "", "log level (overrides LOG_LEVEL)")
	mock := flag.Bool("mock", false, "use mock providers (overrides MOCK_PROVIDERS)")
	flag.Parse()

	// Config
	cfg, err := config.Load(config.Overrides{
		EnvFile:  *envFile,
		HTTPAddr: *httpAddr,
		LogLevel: *logLevel,
		Mock:     *mock,
	})
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	// Logger
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("langdetect starting")

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Provider registry
	providers := buildProviders(cfg, log)
	coordinator, err := detect.NewCoordinator(detect.CoordinatorOptions{
		Providers: providers,
		Timeout:   cfg.DetectTimeout,
		Log:       log.With().Str("component", "coordinator").Logger(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build coordinator")
	}
	prometheus.MustRegister(metrics.NewCollector(coordinator))

	// HTTP Server
	httpLog := log.With().Str("component", "http").Logger()
	srv := api.NewServer(cfg, coordinator, version, startTime, httpLog)

	// Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	// Graceful shutdown with 10s timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("langdetect stopped")
}

// buildProviders assembles the registry from configuration. Real
// connectors are registered only when their credentials are present;
// mock mode replaces the whole registry with deterministic stand-ins.
func buildProviders(cfg *config.Config, log zerolog.Logger) []detect.Provider {
	if cfg.MockProviders {
		log.Warn().Msg("MOCK_PROVIDERS enabled; using filename-keyword mock providers")
		return []detect.Provider{
			detect.NewMockProvider("sarvam-mock", 1500*time.Millisecond),
			detect.NewMockProvider("whisper-mock", 500*time.Millisecond),
			detect.NewMockProvider("elevenlabs-mock", 800*time.Millisecond),
		}
	}

	var providers []detect.Provider
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, detect.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderTimeout))
	}
	if cfg.SarvamAPIKey != "" {
		providers = append(providers, detect.NewSarvamClient(cfg.SarvamAPIKey, cfg.ProviderTimeout))
	}
	if cfg.OpenAIAPIKey != "" || cfg.WhisperURL != "" {
		providers = append(providers, detect.NewWhisperClient(cfg.WhisperURL, cfg.OpenAIAPIKey, cfg.WhisperModel, cfg.ProviderTimeout))
	}
	if cfg.ElevenLabsAPIKey != "" {
		providers = append(providers, detect.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsModel, cfg.ProviderTimeout))
	}

	if len(providers) == 0 {
		log.Warn().Msg("no provider API keys configured; falling back to mock providers")
		return []detect.Provider{
			detect.NewMockProvider("sarvam-mock", 1500*time.Millisecond),
			detect.NewMockProvider("whisper-mock", 500*time.Millisecond),
		}
	}
	return providers
}
