package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cidgate/cidgate/lib/telemetry"
	"github.com/cidgate/cidgate/pkg/build"
	"github.com/cidgate/cidgate/pkg/config"
	"github.com/cidgate/cidgate/pkg/gatewayapi"
	"github.com/cidgate/cidgate/pkg/gwcontext"
	"github.com/cidgate/cidgate/pkg/health"
	"github.com/cidgate/cidgate/pkg/identity"
	"github.com/cidgate/cidgate/pkg/indexer"
	"github.com/cidgate/cidgate/pkg/provider"
	"github.com/cidgate/cidgate/pkg/routestore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cidgate HTTP gateway and background indexer",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "bind host")
	cobra.CheckErr(viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host")))

	serveCmd.Flags().Uint16("port", 8080, "bind port")
	cobra.CheckErr(viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")))

	serveCmd.Flags().String("auth", "none", "auth mode: none or jwt")
	cobra.CheckErr(viper.BindPFlag("auth.type", serveCmd.Flags().Lookup("auth")))

	serveCmd.Flags().String("jwks-url", "", "JWKS URL when auth=jwt")
	cobra.CheckErr(viper.BindPFlag("auth.jwks_url", serveCmd.Flags().Lookup("jwks-url")))

	serveCmd.Flags().Uint("reindex-interval", 300, "indexer tick interval, in seconds")
	cobra.CheckErr(viper.BindPFlag("indexer.interval_seconds", serveCmd.Flags().Lookup("reindex-interval")))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load[config.GatewayConfig]()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	checker := health.NewChecker()

	tel, err := buildTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("starting telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Warnf("telemetry shutdown: %s", err)
		}
	}()

	gwCtx, reindexer, err := buildGateway(ctx, cfg)
	if err != nil {
		return err
	}

	srv := gatewayapi.NewServer(gwCtx, checker)
	if err := srv.Start(ctx, cfg.Server.Addr()); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	log.Infof("cidgate listening on %s", cfg.Server.Addr())

	indexerCtx, cancelIndexer := context.WithCancel(ctx)
	defer cancelIndexer()
	go reindexer.Run(indexerCtx)

	checker.SetReady(true)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildGateway wires config into the live gwcontext.Context and indexer
// loop, matching the teacher's per-command wiring in cmd/cli/serve (this
// gateway skips its fx container, per the departure already documented
// in pkg/gwcontext).
func buildGateway(ctx context.Context, cfg config.GatewayConfig) (*gwcontext.Context, *indexer.Loop, error) {
	signer, err := identity.LoadOrCreate(cfg.Repo.KeyPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading signing key: %w", err)
	}

	store, err := cfg.Repo.OpenStore()
	if err != nil {
		return nil, nil, fmt.Errorf("opening route store: %w", err)
	}

	authSvc, err := cfg.Auth.ToService()
	if err != nil {
		return nil, nil, fmt.Errorf("building auth service: %w", err)
	}

	providers, err := buildProviders(ctx, cfg.Providers, store, signer)
	if err != nil {
		return nil, nil, err
	}

	reg, err := provider.NewRegistry(providers...)
	if err != nil {
		return nil, nil, fmt.Errorf("registering providers: %w", err)
	}

	gwCtx, err := gwcontext.New(store, signer, authSvc, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("building gateway context: %w", err)
	}

	return gwCtx, cfg.Indexer.ToLoop(reg), nil
}

// buildTelemetry starts the OpenTelemetry metrics/traces providers and
// registers them as globals, so otelecho's middleware in gatewayapi has
// somewhere to send spans. An empty config yields noop providers.
func buildTelemetry(ctx context.Context, cfg config.TelemetryConfig) (*telemetry.Telemetry, error) {
	environment := cfg.Environment
	if environment == "" {
		environment = "development"
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "cidgate"
	}
	return telemetry.New(ctx, environment, "cidgate", build.Version, hostname, cfg.ToMetricsConfig(), cfg.ToTracesConfig())
}

func buildProviders(ctx context.Context, cfgs []config.ProviderConfig, store *routestore.Store, signer ed25519.PrivateKey) ([]provider.Provider, error) {
	out := make([]provider.Provider, 0, len(cfgs))
	for _, pc := range cfgs {
		p, err := pc.ToProvider(ctx, store, signer)
		if err != nil {
			return nil, fmt.Errorf("building provider %q: %w", pc.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}
