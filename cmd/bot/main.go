package main

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/evyataryagoni/ipmapbot/internal/bot"
	"github.com/evyataryagoni/ipmapbot/internal/config"
	"github.com/evyataryagoni/ipmapbot/internal/geoip"
	"github.com/evyataryagoni/ipmapbot/internal/logger"
	"github.com/evyataryagoni/ipmapbot/internal/mapkit"
	"github.com/evyataryagoni/ipmapbot/internal/metrics"
	"github.com/evyataryagoni/ipmapbot/internal/ops"
	"github.com/evyataryagoni/ipmapbot/internal/selfip"
	"github.com/evyataryagoni/ipmapbot/internal/service"
)

// updateTimeoutSeconds is the Telegram long-poll timeout
const updateTimeoutSeconds = 30

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		logger.NewDefault().Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)
	startOpsServer(appConfig, appLogger)

	// Connect to Telegram
	api := setupTelegram(appConfig, appLogger)

	// Build application layers
	geoClient := geoip.NewClient(appConfig.GeoAPIBaseURL, appConfig.GeoTimeout, metricsCollector, appLogger)
	renderer := mapkit.NewRenderer(appConfig.MapDir, metricsCollector, appLogger)
	lookupService := service.NewLookupService(geoClient, renderer, appLogger)
	selfIPResolver := selfip.NewResolver(appConfig.SelfIPURL, appConfig.SelfIPTimeout, metricsCollector, appLogger)
	handler := bot.NewHandler(api, lookupService, selfIPResolver, metricsCollector, appLogger)

	// Start polling
	runBot(api, handler, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting IP Map Bot...")
	appLogger.Info().
		Str("geo_api", appConfig.GeoAPIBaseURL).
		Str("self_ip_url", appConfig.SelfIPURL).
		Str("map_dir", appConfig.MapDir).
		Str("ops_port", appConfig.OpsPort).
		Msg("Configuration loaded")

	return appLogger
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startOpsServer serves /health and /metrics on the ops port
// Runs in its own goroutine; the polling loop is the foreground work
func startOpsServer(appConfig *config.Config, log *logger.Logger) {
	opsRouter := ops.NewRouter(log)
	serverAddr := ":" + appConfig.OpsPort

	log.Info().
		Str("health_check", "http://localhost:"+appConfig.OpsPort+"/health").
		Str("metrics", "http://localhost:"+appConfig.OpsPort+"/metrics").
		Msg("Ops server is running")

	go func() {
		log.Fatal().Err(http.ListenAndServe(serverAddr, opsRouter)).Msg("Ops server failed")
	}()
}

// setupTelegram authorizes the bot against the Telegram API
func setupTelegram(appConfig *config.Config, log *logger.Logger) *tgbotapi.BotAPI {
	api, err := tgbotapi.NewBotAPI(appConfig.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	fmt.Printf("✅ Authorized as @%s\n", api.Self.UserName)
	log.Info().Str("username", api.Self.UserName).Msg("Telegram bot authorized")

	return api
}

// runBot drains the update channel, handling each update in its own
// goroutine. Handlers share no mutable state, so no coordination is
// needed beyond the channel itself.
func runBot(api *tgbotapi.BotAPI, handler *bot.Handler, log *logger.Logger) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeoutSeconds

	updates := api.GetUpdatesChan(updateConfig)
	log.Info().Msg("Listening for updates")

	for update := range updates {
		go handler.HandleUpdate(context.Background(), update)
	}
}
