package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mwestbrook/genstudio/internal/adapter/cli"
	"github.com/mwestbrook/genstudio/internal/adapter/gemini"
	"github.com/mwestbrook/genstudio/internal/adapter/observability"
	"github.com/mwestbrook/genstudio/internal/adapter/output/markdown"
	"github.com/mwestbrook/genstudio/internal/adapter/storage"
	"github.com/mwestbrook/genstudio/internal/adapter/store/sqlite"
	"github.com/mwestbrook/genstudio/internal/config"
	"github.com/mwestbrook/genstudio/internal/genai"
	"github.com/mwestbrook/genstudio/internal/usecase/studio"
)

const defaultProviderTimeout = 60 * time.Second

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "genstudio",
		EnvPrefix:   "GENSTUDIO",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	if cfg.Provider.APIKey == "" {
		return fmt.Errorf("provider API key is not configured (set GENSTUDIO_PROVIDER_APIKEY)")
	}

	client := gemini.NewClient(cfg.Provider.APIKey, cfg.Provider.ParseTimeout(defaultProviderTimeout))

	obs := buildObservability(cfg.Observability)
	var observer genai.Observer
	if obs.sink != nil {
		observer = obs.sink
	}
	envelope := genai.NewEnvelope(client, cfg.HTTP.RetryConfig(), observer)

	objects := storage.NewFileStore(cfg.Storage.Directory)

	var recorder studio.Recorder
	var stats cli.StatsProvider
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0o755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			callStore, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize store: %v", err)
			} else {
				defer callStore.Close()
				recorder = callStore
				stats = callStore
			}
		}
	}

	var warner studio.Warner
	if obs.logger != nil {
		warner = obs.logger
	}

	service := studio.NewService(envelope, cfg.Models, cfg.Temperatures, objects, recorder, warner)

	nowFunc := func() string {
		return time.Now().UTC().Format("20060102T150405Z")
	}
	reportWriter := markdown.NewWriter(nowFunc)

	root := cli.NewRootCommand(cli.Dependencies{
		Studio:    service,
		Stats:     stats,
		Report:    reportWriter,
		Model:     cfg.Models.ModelFor(config.WorkloadImageGeneration),
		OutputDir: cfg.Storage.Directory,
		Version:   version,
		Args: cli.Arguments{
			OutWriter: os.Stdout,
			ErrWriter: os.Stderr,
		},
	})

	return root.ExecuteContext(ctx)
}

type observabilityComponents struct {
	logger *observability.CallLogger
	sink   *observability.Sink
}

func buildObservability(cfg config.ObservabilityConfig) observabilityComponents {
	var comps observabilityComponents

	if cfg.Logging.Enabled {
		format := resolveLogFormat(cfg.Logging.Format, cli.IsOutputTerminal())
		comps.logger = observability.NewCallLogger(os.Stderr, observability.ParseLogLevel(cfg.Logging.Level), format)
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	if comps.logger != nil || metrics != nil {
		comps.sink = observability.NewSink(comps.logger, metrics)
	}
	return comps
}

// resolveLogFormat picks the log format. An explicit config value always
// wins; when the user set nothing, piped output gets JSON lines so
// downstream tools can parse the stream, and a terminal gets human text.
func resolveLogFormat(configured string, interactive bool) observability.LogFormat {
	if configured == "" {
		if interactive {
			return observability.LogFormatHuman
		}
		return observability.LogFormatJSON
	}
	return observability.ParseLogFormat(configured)
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "genstudio"))
	}
	return paths
}
