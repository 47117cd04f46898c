package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"briefcast/internal/config"
	fbRepo "briefcast/internal/infra/adapter/persistence/firebase"
	pgRepo "briefcast/internal/infra/adapter/persistence/postgres"
	"briefcast/internal/infra/db"
	"briefcast/internal/infra/llm"
	"briefcast/internal/infra/mailer"
	"briefcast/internal/infra/search"
	"briefcast/internal/observability/logging"
	"briefcast/internal/observability/tracing"
	"briefcast/internal/repository"

	accUC "briefcast/internal/usecase/account"
	assistUC "briefcast/internal/usecase/assist"
	convUC "briefcast/internal/usecase/conversation"
	newsUC "briefcast/internal/usecase/news"

	hhttp "briefcast/internal/handler/http"
	haccount "briefcast/internal/handler/http/account"
	hassist "briefcast/internal/handler/http/assist"
	hmail "briefcast/internal/handler/http/mail"
	hnews "briefcast/internal/handler/http/news"
	"briefcast/internal/handler/http/middleware"
	"briefcast/internal/handler/http/requestid"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracing := tracing.Init(ctx)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	users, chats, storeCheck, closeStore := initStore(ctx, cfg, logger)
	defer closeStore()

	completer := initCompleter(cfg, logger)
	searcher := initSearcher(cfg, logger)
	mail := initMailer(cfg, logger)

	conversations := convUC.NewService(chats, logger)
	accounts := accUC.NewService(users, logger)
	assist := assistUC.NewService(completer, searcher, users, conversations, cfg.AI.MaxAgentSteps, logger)
	news := newsUC.NewService(completer, searcher, users, cfg.News, logger)

	mux := http.NewServeMux()
	mux.Handle("GET    /{$}", hhttp.RootHandler{})
	mux.Handle("GET    /live", hhttp.LiveHandler{})
	mux.Handle("GET    /health", &hhttp.HealthHandler{StoreCheck: storeCheck, Version: version()})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	haccount.Register(mux, accounts)
	hassist.Register(mux, assist, conversations)
	hnews.Register(mux, news)
	hmail.Register(mux, mail, logger)

	handler := applyMiddleware(logger, cfg.Server, mux)

	runServer(logger, cfg.Server, handler)
}

// initStore builds the user and chat repositories for the configured backend
// and returns a health probe plus a cleanup func.
func initStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (
	repository.UserRepository,
	repository.ChatRepository,
	func(ctx context.Context) error,
	func(),
) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		database, err := db.Open(cfg.Store.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", slog.Any("error", err))
			os.Exit(1)
		}
		if err := db.MigrateUp(database); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("user store initialized", slog.String("backend", "postgres"))

		check := func(ctx context.Context) error { return database.PingContext(ctx) }
		cleanup := func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}
		return pgRepo.NewUserRepo(database), pgRepo.NewChatRepo(database), check, cleanup

	default:
		client, err := fbRepo.NewClient(ctx, cfg.Store)
		if err != nil {
			logger.Error("failed to initialize firebase", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("user store initialized", slog.String("backend", "firebase"))

		check := func(ctx context.Context) error {
			var v any
			return client.DB.NewRef("health").Get(ctx, &v)
		}
		return fbRepo.NewUserRepo(client), fbRepo.NewChatRepo(client), check, func() {}
	}
}

// initCompleter selects the model client by provider.
func initCompleter(cfg *config.Config, logger *slog.Logger) llm.Completer {
	switch cfg.AI.Provider {
	case config.ProviderClaude:
		logger.Info("model provider initialized", slog.String("provider", "claude"),
			slog.String("model", cfg.AI.Model))
		return llm.NewClaude(cfg.AI)
	case config.ProviderNoop:
		logger.Warn("model provider is noop; responses are echoes")
		return llm.NewNoOp()
	default:
		logger.Info("model provider initialized", slog.String("provider", "openai"),
			slog.String("model", cfg.AI.Model))
		return llm.NewOpenAI(cfg.AI)
	}
}

func initSearcher(cfg *config.Config, logger *slog.Logger) search.Searcher {
	logger.Info("search provider initialized", slog.String("base_url", cfg.Search.BaseURL))
	return search.NewTavily(cfg.Search)
}

func initMailer(cfg *config.Config, logger *slog.Logger) mailer.Mailer {
	if !cfg.Mail.Enabled || cfg.Mail.Username == "" {
		logger.Warn("mailer is noop; emails are logged and dropped")
		return mailer.NoOp{}
	}
	return mailer.NewSMTP(cfg.Mail)
}

func version() string {
	v := os.Getenv("VERSION")
	if v == "" {
		v = "dev"
	}
	return v
}

// applyMiddleware wraps the handler with the shared chain.
// Order: CORS → Request ID → Tracing → Rate Limit → Recovery → Logging → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(60, 1*time.Minute)

	h := hhttp.MetricsMiddleware(handler)
	h = hhttp.LimitRequestBody(cfg.BodyLimit)(h)
	h = hhttp.Logging(logger)(h)
	h = hhttp.Recover(logger)(h)
	h = rateLimiter.Limit(h)
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	h = middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins})(h)
	return h
}

// runServer starts the HTTP server and blocks until shutdown completes.
func runServer(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) {
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
