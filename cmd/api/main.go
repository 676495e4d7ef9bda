// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"georisk/internal/config"
	"georisk/internal/domain/risk"
	"georisk/internal/logging"
	"georisk/internal/server"
	"georisk/internal/service/analysis"
	"georisk/internal/service/classifier"
	"georisk/internal/service/collect"
	"georisk/internal/service/geo"
	"georisk/internal/service/textproc"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging.Level)

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// NATS is optional; an empty URL disables event publishing
	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = initNATS(cfg.NATS)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Info("NATS disabled, assessment events will not be published")
	}

	// Text processing and taxonomy
	normalizer, err := textproc.NewDefaultNormalizer()
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}

	taxonomy, err := analysis.LoadTaxonomy()
	if err != nil {
		log.Fatalf("Failed to load keyword taxonomy: %v", err)
	}

	// Initialize collectors for every configured source
	collectors := buildCollectors(cfg.Collect, logger)

	// Initialize services
	resolver := geo.NewNominatimResolver(cfg.Geo.UserAgent, cfg.Geo.Timeout, logger)
	inference := classifier.NewClient(cfg.Classifier.InferenceURL, cfg.Classifier.APIKey, cfg.Classifier.Timeout)
	sentiment := analysis.NewSentimentAnalyzer(inference, logger)
	filter := analysis.NewFilter(normalizer, cfg.Collect.SpamPhrases)
	extractor := analysis.NewKeywordExtractor(taxonomy, normalizer)

	pipeline := analysis.NewPipeline(
		collectors,
		resolver,
		filter,
		extractor,
		sentiment,
		natsConn,
		analysis.PipelineConfig{
			TopicCount:    cfg.Analysis.TopicCount,
			EventsSubject: cfg.NATS.EventsSubject,
		},
		logger,
	)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, pipeline, taxonomy, pipeline.Sources())

	// Start HTTP server
	go func() {
		logger.Info("starting HTTP server", "host", cfg.Server.Host, "port", cfg.Server.Port, "sources", pipeline.Sources())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// buildCollectors assembles one collector per source that has
// credentials configured. Missing credentials skip the source rather
// than fail startup.
func buildCollectors(cfg config.CollectConfig, logger *slog.Logger) []risk.Collector {
	var collectors []risk.Collector

	if cfg.TwitterBearerToken != "" {
		collectors = append(collectors, collect.NewTwitterCollector(cfg.TwitterBearerToken, cfg.FetchTimeout))
	} else {
		logger.Warn("TWITTER_BEARER_TOKEN not set, social source disabled")
	}

	if cfg.ForumEnabled {
		collectors = append(collectors, collect.NewRedditCollector(cfg.UserAgent, cfg.ForumSubreddits, cfg.FetchTimeout))
	}

	if cfg.NewsAPIKey != "" {
		collectors = append(collectors, collect.NewNewsCollector(cfg.NewsAPIKey, cfg.FetchTimeout))
	} else {
		logger.Warn("NEWSAPI_KEY not set, news source disabled")
	}

	return collectors
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
