package http

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accountusecases "github.com/inkwell-print/inkwell/internal/application/account/usecases"
	auditusecases "github.com/inkwell-print/inkwell/internal/application/audit/usecases"
	"github.com/inkwell-print/inkwell/internal/application/maintenance"
	ticketusecases "github.com/inkwell-print/inkwell/internal/application/ticket/usecases"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/infrastructure/auth"
	"github.com/inkwell-print/inkwell/internal/infrastructure/cache"
	"github.com/inkwell-print/inkwell/internal/infrastructure/config"
	"github.com/inkwell-print/inkwell/internal/infrastructure/email"
	"github.com/inkwell-print/inkwell/internal/infrastructure/permission"
	"github.com/inkwell-print/inkwell/internal/infrastructure/pubsub"
	"github.com/inkwell-print/inkwell/internal/infrastructure/ratelimit"
	"github.com/inkwell-print/inkwell/internal/infrastructure/repository"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/handlers"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/middleware"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	shareddb "github.com/inkwell-print/inkwell/internal/shared/db"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/services/markdown"
)

// Container wires repositories, use cases and handlers from configuration.
// The server, the worker and the job command all build one.
type Container struct {
	cfg   *config.Config
	db    *gorm.DB
	redis *redis.Client
	log   logger.Interface

	Runner *maintenance.Runner
	Router *Router

	closePublisher func() error
}

// NewContainer builds every component. Redis is optional: when it is
// disabled or unreachable the prune guard and reminder deduplication are
// skipped and events fall back to the configured non-redis driver.
func NewContainer(ctx context.Context, cfg *config.Config, db *gorm.DB, log logger.Interface) (*Container, error) {
	c := &Container{cfg: cfg, db: db, log: log}
	clock := biztime.SystemClock()
	lifecycle := cfg.Lifecycle
	leadCap := handlers.LeadHoursCap(lifecycle.VerificationTTL())

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warnw("redis unavailable, running without run guard and reminder deduplication", "addr", cfg.Redis.GetAddr(), "error", err)
		} else {
			c.redis = client
		}
	}

	var (
		guard audit.RunGuard
		dedup notification.Deduplicator
	)
	if c.redis != nil {
		guard = cache.NewRunGuard(c.redis)
		dedup = cache.NewReminderDeduplicator(c.redis, lifecycle.VerificationTTL())
	}

	eventsCfg := cfg.Events
	if eventsCfg.Driver == "redis" && c.redis == nil {
		log.Warnw("redis unavailable, conversation status events are disabled")
		eventsCfg.Driver = "none"
	}
	publisher, closePublisher, err := pubsub.NewPublisher(eventsCfg, c.redis, log.Named("events"))
	if err != nil {
		c.Shutdown()
		return nil, err
	}
	c.closePublisher = closePublisher

	md := markdown.NewMarkdownService()
	sender := email.NewSender(cfg.Email, md, log.Named("email"))
	templates := email.NewTemplates(md)
	verifyLinks := accountusecases.NewVerifyLinkBuilder(cfg.Server.BaseURL)

	accounts := repository.NewAccountRepository(db)
	conversations := repository.NewConversationRepository(db)
	auditLogs := repository.NewAuditLogRepository(db)

	recorder := auditusecases.NewRecorder(auditLogs, clock, log.Named("audit"))
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	accountLog := log.Named("account")
	registerUC := accountusecases.NewRegisterUseCase(accounts, hasher, sender, templates, recorder, verifyLinks, clock, lifecycle, accountLog)
	verifyUC := accountusecases.NewVerifyEmailUseCase(accounts, recorder, clock, lifecycle, accountLog)
	loginUC := accountusecases.NewLoginUseCase(accounts, hasher, jwtService, clock, accountLog)
	statsUC := accountusecases.NewGetUnverifiedStatsUseCase(accounts, clock, lifecycle, accountLog)
	listUC := accountusecases.NewListUnverifiedUseCase(accounts, clock, lifecycle, accountLog)
	cleanupUC := accountusecases.NewCleanupExpiredUseCase(accounts, recorder, clock, lifecycle, accountLog)
	remindersUC := accountusecases.NewSendRemindersUseCase(accounts, sender, templates, dedup, recorder, verifyLinks, clock, lifecycle, accountLog)
	deleteUC := accountusecases.NewDeleteAccountUseCase(accounts, shareddb.NewTransactionManager(db), recorder, accountLog)

	ticketLog := log.Named("ticket")
	openUC := ticketusecases.NewOpenConversationUseCase(conversations, md, clock, lifecycle, ticketLog)
	postUC := ticketusecases.NewPostMessageUseCase(conversations, md, clock, ticketLog)
	candidatesUC := ticketusecases.NewFindAutoCloseCandidatesUseCase(conversations, clock, lifecycle, ticketLog)
	autoCloseUC := ticketusecases.NewAutoCloseUseCase(conversations, publisher, sender, templates, recorder, clock, lifecycle, ticketLog)
	runDailyUC := ticketusecases.NewRunDailyUseCase(conversations, autoCloseUC, clock, lifecycle, ticketLog)

	auditLog := log.Named("audit")
	pruneUC := auditusecases.NewPruneAuditLogsUseCase(auditLogs, guard, recorder, clock, lifecycle, auditLog)
	listAuditUC := auditusecases.NewListAuditLogsUseCase(auditLogs, auditLog)

	c.Runner = maintenance.NewRunner(remindersUC, cleanupUC, runDailyUC, pruneUC, clock, log.Named("maintenance"))

	enforcer, err := permission.NewEnforcer(db, log.Named("permission"))
	if err != nil {
		c.Shutdown()
		return nil, err
	}

	var limiter ratelimit.Limiter
	if c.redis != nil && cfg.RateLimit.Enabled {
		limiter = ratelimit.NewRedisLimiter(c.redis)
	}

	var pinger handlers.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}

	c.Router = NewRouter(cfg.Server.Mode, Handlers{
		Auth:         handlers.NewAuthHandler(registerUC, verifyUC, loginUC, log.Named("http.auth")),
		Support:      handlers.NewSupportHandler(openUC, postUC, log.Named("http.support")),
		Health:       handlers.NewHealthHandler(pinger),
		AccountAdmin: handlers.NewAccountAdminHandler(statsUC, listUC, cleanupUC, remindersUC, deleteUC, leadCap, log.Named("http.accounts")),
		TicketAdmin:  handlers.NewTicketAdminHandler(candidatesUC, autoCloseUC, log.Named("http.tickets")),
		Maintenance:  handlers.NewMaintenanceHandler(c.Runner, listAuditUC, leadCap, log.Named("http.maintenance")),
	}, Middlewares{
		Auth:          middleware.NewAuthMiddleware(jwtService, log.Named("http.auth")),
		Permission:    middleware.NewPermissionMiddleware(enforcer, log.Named("http.permission")),
		RateLimit:     middleware.NewRateLimitMiddleware(limiter, log.Named("http.ratelimit")),
		AuthLimits:    ratelimit.Limits{PerMinute: cfg.RateLimit.AuthPerMinute, PerHour: cfg.RateLimit.AuthPerHour},
		SupportLimits: ratelimit.Limits{PerMinute: cfg.RateLimit.SupportPerMinute, PerHour: cfg.RateLimit.SupportPerHour},
	}, log.Named("http"))

	return c, nil
}

// Shutdown releases the publisher and the redis client. The database
// handle belongs to the caller.
func (c *Container) Shutdown() {
	if c.closePublisher != nil {
		if err := c.closePublisher(); err != nil {
			c.log.Warnw("failed to close event publisher", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second
