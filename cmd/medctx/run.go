package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/medctx/medctx/config"
	"github.com/medctx/medctx/pkg/auth"
	"github.com/medctx/medctx/pkg/models"
	"github.com/medctx/medctx/pkg/nlp"
	"github.com/medctx/medctx/pkg/server"
	"github.com/medctx/medctx/pkg/telemetry"
)

// run is the entrypoint for the medctx server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring medctx: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting medctx server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	appState, err := NewAppState(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if hc, ok := appState.ContextModel.(models.HealthChecker); ok {
		info, err := nlp.WaitForServer(ctx, hc, cfg.NLP.StartupRetries)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("Using NLP server at %s: model %s, version %s", cfg.NLP.ServerURL, info.Model, info.Version)
	}

	srv, err := server.Create(appState)
	if err != nil {
		log.Fatal(err)
	}

	setupSignalHandler(srv, cfg, shutdownTracing)

	log.Infof(
		"Listening on: %s (max request size %s, %d concurrent model call(s))",
		srv.Addr,
		humanize.IBytes(uint64(cfg.Server.MaxRequestSize)),
		cfg.NLP.MaxConcurrency,
	)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// NewAppState creates an AppState struct from the config file / ENV and builds the
// context model the handlers share for the lifetime of the process.
func NewAppState(cfg *config.Config) (*models.AppState, error) {
	client, err := nlp.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &models.AppState{
		ContextModel: nlp.NewLimitedModel(client, cfg.NLP.MaxConcurrency, cfg.NLP.QueueWait),
		Config:       cfg,
	}, nil
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
	if generateKey {
		token, err := auth.GenerateJWT(cfg)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(token)
		os.Exit(0)
	}
}

// setupSignalHandler shuts the server down gracefully on termination
func setupSignalHandler(
	srv *http.Server,
	cfg *config.Config,
	shutdownTracing telemetry.ShutdownFunc,
) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalCh
		log.Infof("Received %s, shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Errorf("Error shutting down tracing: %v", err)
		}
	}()
}
