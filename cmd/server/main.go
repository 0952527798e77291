package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/careeros/backend/modules/auth"
	"github.com/careeros/backend/modules/billing"
	usagemod "github.com/careeros/backend/modules/usage"
	"github.com/careeros/backend/pkg/config"
	"github.com/careeros/backend/pkg/httpserver"
	"github.com/careeros/backend/pkg/logger"
	"github.com/careeros/backend/pkg/mailer"
	"github.com/careeros/backend/pkg/pg"
	"github.com/careeros/backend/pkg/redis"
	authsvc "github.com/careeros/backend/svc/auth"
	"github.com/careeros/backend/svc/subscription"
	usagesvc "github.com/careeros/backend/svc/usage"
)

type appConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"careeros-api"`
	PlansFile   string `env:"PLANS_FILE"` // optional YAML plan catalog

	Logger logger.Config
	PG     pg.Config
	Redis  redis.Config
	HTTP   httpserver.Config
	Auth   authsvc.Config
	Paddle subscription.PaddleConfig
	Mailer mailer.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Fail fast on configuration errors, notably a missing JWT_SECRET or
	// DATABASE_URL. There are no insecure fallbacks.
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewFromConfig(cfg.Logger, logger.WithService(cfg.ServiceName))
	slog.SetDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		return err
	}

	healthchecks := []func(context.Context) error{pg.Healthcheck(pool)}

	// Redis is optional. Without it logout falls back to expiry-only
	// token invalidation.
	var denylist authsvc.Denylist
	if cfg.Redis.Enabled() {
		redisClient, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		denylist = authsvc.NewRedisDenylist(redisClient)
		healthchecks = append(healthchecks, redis.Healthcheck(redisClient))
		log.Info("token denylist enabled")
	}

	tokens, err := authsvc.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	var emailSender mailer.EmailSender
	if cfg.Mailer.Enabled() {
		emailSender, err = mailer.NewPostmarkSender(cfg.Mailer)
		if err != nil {
			return err
		}
	} else {
		emailSender = mailer.NewLogSender(log)
		log.Info("postmark not configured, logging outbound email")
	}

	authOpts := []authsvc.Option{
		authsvc.WithLogger(log),
		authsvc.WithBcryptCost(cfg.Auth.BcryptCost),
		authsvc.WithAfterSignup(welcomeEmailHook(emailSender)),
	}
	if denylist != nil {
		authOpts = append(authOpts, authsvc.WithDenylist(denylist))
	}
	authService := authsvc.NewService(authsvc.NewPostgresStorage(pool), tokens, authOpts...)

	var plansSource subscription.Source = subscription.NewStaticSource()
	if cfg.PlansFile != "" {
		plansSource = subscription.NewYAMLFileSource(cfg.PlansFile)
	}

	subOpts := []subscription.Option{subscription.WithLogger(log)}
	if cfg.Paddle.Enabled() {
		provider, err := subscription.NewPaddleProvider(cfg.Paddle)
		if err != nil {
			return err
		}
		subOpts = append(subOpts, subscription.WithProvider(provider))
	} else {
		log.Info("paddle not configured, billing disabled")
	}
	subService, err := subscription.NewService(ctx, plansSource, subscription.NewPostgresStore(pool), subOpts...)
	if err != nil {
		return err
	}

	usageService := usagesvc.NewService(
		usagesvc.NewPostgresStore(pool),
		subService,
		usagesvc.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(log, healthchecks...))

	r.Mount("/billing", billing.Router(billing.Deps{
		Subscriptions: subService,
		Tokens:        tokens,
		Denylist:      denylist,
		Logger:        log,
	}))
	r.Mount("/usage", usagemod.Router(usagemod.Deps{
		Usage:    usageService,
		Tokens:   tokens,
		Denylist: denylist,
		Logger:   log,
	}))
	r.Mount("/", auth.Router(auth.Deps{
		Auth:     authService,
		Tokens:   tokens,
		Denylist: denylist,
		Logger:   log,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// welcomeEmailHook sends the post-signup welcome email. Runs async via
// the auth service hook, so a mail outage never fails a signup.
func welcomeEmailHook(sender mailer.EmailSender) func(context.Context, authsvc.User) error {
	return func(ctx context.Context, user authsvc.User) error {
		name := user.Name
		if name == "" {
			name = "there"
		}
		return sender.SendEmail(ctx, mailer.SendEmailParams{
			SendTo:  user.Email,
			Subject: "Welcome to CareerOS",
			BodyHTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your account is ready. Track applications, chat with the agent, and build resumes from your dashboard.</p>",
				name,
			),
			Tag: "welcome",
		})
	}
}

// requestLogger emits one structured line per request.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
