// Command server runs the intake backend: the form submission API, the
// static frontend, the optional password gate, and the health endpoint.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oddlzenie/intake/modules/gate"
	"github.com/oddlzenie/intake/modules/intake"
	"github.com/oddlzenie/intake/pkg/config"
	"github.com/oddlzenie/intake/pkg/email"
	"github.com/oddlzenie/intake/pkg/httpserver"
	"github.com/oddlzenie/intake/pkg/logger"
	"github.com/oddlzenie/intake/pkg/ratelimit"
	"github.com/oddlzenie/intake/pkg/redis"
	"github.com/oddlzenie/intake/pkg/requestid"
)

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	PublicDir   string `env:"PUBLIC_DIR" envDefault:"./public"`
	DevEmailDir string `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"` // Where the dev sender drops outgoing mail.
}

func main() {
	var (
		appCfg      appConfig
		serverCfg   httpserver.Config
		emailCfg    email.Config
		redisCfg    redis.Config
		limitCfg    ratelimit.Config
		gateCfg     gate.Config
		rendererCfg intake.RendererConfig
		notifierCfg intake.NotifierConfig
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&limitCfg)
	config.MustLoad(&gateCfg)
	config.MustLoad(&rendererCfg)
	config.MustLoad(&notifierCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, "intake"),
		logger.WithContextExtractors(requestid.LogExtractor),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	sender := newSender(ctx, appCfg, emailCfg, log)

	var healthChecks []func(context.Context) error

	var store ratelimit.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
			os.Exit(1)
		}
		defer func() { _ = client.Close() }()
		store = ratelimit.NewRedisStore(client)
		healthChecks = append(healthChecks, redis.Healthcheck(client))
		log.InfoContext(ctx, "rate limit store: redis")
	} else {
		memStore := ratelimit.NewMemoryStore()
		defer func() { _ = memStore.Close() }()
		store = memStore
		log.InfoContext(ctx, "rate limit store: in-memory")
	}

	limiter, err := ratelimit.NewSlidingWindow(store, limitCfg.Limit, limitCfg.Window)
	if err != nil {
		log.ErrorContext(ctx, "rate limiter setup failed", logger.Error(err))
		os.Exit(1)
	}

	renderer := intake.NewScriptRenderer(rendererCfg, log)
	notifier := intake.NewNotifier(notifierCfg, sender, log)
	intakeHandler := intake.NewHandler(renderer, notifier, log)

	g, err := gate.New(gateCfg, log)
	if err != nil {
		log.ErrorContext(ctx, "gate setup failed", logger.Error(err))
		os.Exit(1)
	}
	if g.Enabled() {
		log.InfoContext(ctx, "password gate enabled")
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(g.Middleware)

	r.Get("/health", httpserver.HealthCheckHandler(log, appCfg.Env, healthChecks...))

	api := intake.Router(intakeHandler, limiter)
	api.Post("/verify-password", g.VerifyHandler)
	r.Mount("/api", api)

	static := newStaticHandler(appCfg.PublicDir)
	r.Get("/formular", static.page("formular.html"))
	r.NotFound(static.serve)

	srv := httpserver.NewFromConfig(serverCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("server listening", slog.String("port", serverCfg.Port), slog.String("env", appCfg.Env))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("server stopped")
		}),
	)

	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// newSender picks the mail transport. Missing Postmark credentials are not
// fatal: the dev sender keeps the pipeline testable end to end and the gap
// is visible in the logs.
func newSender(ctx context.Context, appCfg appConfig, cfg email.Config, log *slog.Logger) email.Sender {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		sender, err := email.NewPostmarkClient(cfg)
		if err != nil {
			log.ErrorContext(ctx, "postmark setup failed", logger.Error(err))
			os.Exit(1)
		}
		log.InfoContext(ctx, "mail transport: postmark")
		return sender
	}

	log.WarnContext(ctx, "postmark credentials missing, writing mail to disk",
		slog.String("dir", appCfg.DevEmailDir))
	return email.NewDevSender(appCfg.DevEmailDir)
}
