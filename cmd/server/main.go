package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"selo/internal/credential/composer"
	credentialhandler "selo/internal/credential/handler"
	"selo/internal/credential/prover"
	"selo/internal/credential/service"
	"selo/internal/credential/store"
	"selo/internal/credential/tracer"
	"selo/internal/credential/verifier"
	"selo/internal/document"
	"selo/internal/ledger"
	"selo/internal/platform/config"
	"selo/internal/platform/database"
	"selo/internal/platform/httpserver"
	"selo/internal/platform/logger"
	"selo/internal/platform/metrics"
	"selo/internal/platform/token"
	httptransport "selo/internal/transport/http"
	"selo/migrations"
	"selo/pkg/platform/audit"
	"selo/pkg/platform/audit/publisher"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing selo",
		"addr", cfg.Addr,
		"issuer", cfg.IssuerDID,
		"store", cfg.CredentialStore,
	)

	var proving prover.Prover
	if cfg.ProverURL != "" {
		proving = prover.NewHTTPClient(cfg.ProverURL, cfg.ProverTimeout)
	} else {
		log.Warn("no proving sidecar configured, using in-process mock prover")
		proving = &prover.MockProver{}
	}

	credStore, cleanup := newCredentialStore(cfg, log)
	defer cleanup()

	auditStore := newAuditStore(cfg, log)
	auditPublisher := publisher.New(auditStore, publisher.WithLogger(log))
	defer auditPublisher.Close()

	builder := prover.NewBuilder(proving,
		prover.WithAccessList(cfg.CPFAccessList),
		prover.WithRequiredCategory(cfg.RequiredCategory),
		prover.WithLogger(log),
	)
	compose := composer.New(cfg.IssuerDID, composer.WithValidityWindow(cfg.ValidityWindow))
	verify := verifier.New(proving, log)

	m := metrics.New()
	opts := []service.Option{
		service.WithAuditor(auditPublisher),
		service.WithMetrics(m),
		service.WithLogger(log),
		service.WithTracer(tracer.NewOTel()),
	}
	if cfg.LedgerURL != "" {
		opts = append(opts, service.WithRegistrar(ledger.NewHTTPRegistrar(cfg.LedgerURL, 30*time.Second)))
	}
	svc, err := service.New(builder, compose, verify, credStore, opts...)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	tokens := token.NewService(cfg.APISigningKey, cfg.IssuerDID, 24*time.Hour)

	router := httptransport.NewRouter(httptransport.Deps{
		Credentials:    credentialhandler.New(svc, log),
		Documents:      document.NewHandler(document.NewTextExtractor(), log),
		TokenValidator: tokens,
		Metrics:        m,
	}, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// newCredentialStore selects the persistence backend and returns it with a
// cleanup func for the underlying connection.
func newCredentialStore(cfg config.Server, log *slog.Logger) (store.Store, func()) {
	switch cfg.CredentialStore {
	case "postgres":
		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.DatabaseURL
		pool, err := database.New(dbCfg)
		if err != nil || pool == nil {
			log.Error("postgres init failed", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := migrations.Apply(ctx, pool.DB()); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		return store.NewPostgres(pool.DB()), func() { _ = pool.Close() } //nolint:errcheck // shutdown path

	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Error("mongo init failed", "error", err)
			os.Exit(1)
		}
		return store.NewMongo(client.Database("selo")), func() {
			_ = client.Disconnect(context.Background()) //nolint:errcheck // shutdown path
		}

	default:
		return store.NewInMemoryStore(), func() {}
	}
}

// newAuditStore prefers the NATS sink, falling back to in-memory when no
// broker is configured.
func newAuditStore(cfg config.Server, log *slog.Logger) audit.Store {
	if cfg.NATSURL == "" {
		return audit.NewInMemoryStore()
	}
	natsStore, err := audit.NewNATSStore(cfg.NATSURL, cfg.AuditSubject, log)
	if err != nil {
		log.Warn("NATS audit sink unavailable, falling back to in-memory", "error", err)
		return audit.NewInMemoryStore()
	}
	return natsStore
}
