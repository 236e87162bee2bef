package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/attempt"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/auth"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/completion"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/metrics"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/router"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/tutor"
)

type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	AIQuizContainer  *aiquiz.AIQuizContainer
	AttemptContainer *attempt.AttemptContainer
	TutorContainer   *tutor.TutorContainer
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	config.InitLogger(cfg.LogLevel, cfg.LogFormat)
	metrics.Init()

	if err := auth.Init(cfg.JWTSecret); err != nil {
		return nil, err
	}

	db, err := config.Connect(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := db.WithContext(ctx).AutoMigrate(&aiquiz.Quiz{}, &aiquiz.Question{}, &attempt.Attempt{}); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	client := newCompletionClient(ctx, cfg)
	rdb, lock := newGenerationLock(ctx, cfg)

	aiQuizContainer := aiquiz.NewAIQuizContainer(db, client, lock, aiquiz.Config{
		MaxRetries:      cfg.Quiz.MaxRetries,
		Temperature:     cfg.Quiz.Temperature,
		TemperatureStep: cfg.Quiz.TemperatureStep,
		MaxTokens:       cfg.Quiz.MaxTokens,
		CallTimeout:     cfg.Quiz.CallTimeout,
	})
	attemptContainer := attempt.NewAttemptContainer(db, aiQuizContainer.Repo)
	tutorContainer := tutor.NewTutorContainer(client, cfg.Quiz.MaxTokens, cfg.Quiz.CallTimeout)

	return &Container{
		Config:           cfg,
		DB:               db,
		Redis:            rdb,
		AIQuizContainer:  aiQuizContainer,
		AttemptContainer: attemptContainer,
		TutorContainer:   tutorContainer,
	}, nil
}

// newCompletionClient never fails: without a usable credential every
// generation request reports a server error instead of the process
// refusing to start.
func newCompletionClient(ctx context.Context, cfg *config.Config) completion.Client {
	client, err := completion.New(ctx, completion.Config{
		Provider: cfg.Completion.Provider,
		APIKey:   cfg.Completion.APIKey,
		BaseURL:  cfg.Completion.BaseURL,
		Model:    cfg.Completion.Model,
		Referer:  cfg.Completion.Referer,
	})
	if err != nil {
		config.Logger.WithError(err).Error("Completion client not configured, quiz generation will fail")
		return completion.Unconfigured(err)
	}
	return completion.WithRateLimit(client, cfg.Completion.RatePerSecond, cfg.Completion.RateBurst)
}

func newGenerationLock(ctx context.Context, cfg *config.Config) (*redis.Client, aiquiz.GenerationLock) {
	if cfg.RedisAddr == "" {
		return nil, aiquiz.NoopLock()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		config.Logger.WithError(err).Warn("Redis unreachable, generation lock disabled")
		_ = rdb.Close()
		return nil, aiquiz.NoopLock()
	}

	config.Logger.Info("Redis connection established")
	return rdb, aiquiz.NewRedisLock(rdb, cfg.Quiz.LockTTL)
}

func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		AIQuizHandler:  c.AIQuizContainer.Handler,
		AttemptHandler: c.AttemptContainer.Handler,
		TutorHandler:   c.TutorContainer.Handler,
		Health:         c.ping,
		AllowedOrigins: c.Config.CORSAllowedOrigins,
	})
}

func (c *Container) ping(r *http.Request) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(r.Context())
}

func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
