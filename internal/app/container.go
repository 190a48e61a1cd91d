package app

import (
	"context"
	"errors"
	"time"

	"learnpath/internal/config"
	"learnpath/internal/database"
	"learnpath/internal/database/migration"
	dbpostgres "learnpath/internal/database/postgres"
	"learnpath/internal/database/seeder"
	"learnpath/internal/infrastructure/cache"
	"learnpath/internal/infrastructure/generator"
	"learnpath/internal/logging"
	"learnpath/internal/mockapi"
	"learnpath/internal/pkg/jwt"
	"learnpath/internal/repository"
	"learnpath/internal/search"
	"learnpath/internal/usecase"
	"learnpath/internal/ws"
)

// Container holds the wired dependencies of the service. Redis and
// postgres are optional; without them sessions and quiz attempts live in
// process memory.
type Container struct {
	Config config.Config
	Logger logging.Logger

	DB    database.DB
	Redis *cache.Redis

	JWT       jwt.Service
	Hub       *ws.Hub
	Sessions  *usecase.SessionManager
	Auth      *usecase.Auth
	Dashboard *usecase.Dashboard
	Courses   *usecase.Courses
	Quizzes   *usecase.Quizzes
	Community *usecase.Community
}

func NewContainer(ctx context.Context, cfg config.Config, logger logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Container{Config: cfg, Logger: logger}

	sessionRepo, err := c.sessionRepository(ctx)
	if err != nil {
		return nil, err
	}
	attemptRepo, err := c.attemptRepository(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	backend, err := mockapi.NewBackend(mockapi.WithDelayScale(cfg.Mock.DelayScale))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	gen := generator.NewClient(cfg.Generator.BaseURL, cfg.Generator.Timeout, logger.With("component", "generator"))
	var searchBackend search.Backend = backend
	if c.Redis.Available() {
		searchBackend = search.NewCachedBackend(backend, c.Redis, cfg.Redis.SearchCacheTTL, logger.With("component", "search"))
	}
	searchSvc := search.NewService(searchBackend)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Hub = ws.NewHub(logger)

	c.Sessions = usecase.NewSessionManager(sessionRepo, backend, gen, logger)
	c.Auth = usecase.NewAuthUsecase(c.Sessions, c.JWT)
	c.Dashboard = usecase.NewDashboardUsecase(c.Sessions, backend, logger)
	c.Courses = usecase.NewCoursesUsecase(c.Sessions, backend, searchSvc, gen, logger)
	c.Quizzes = usecase.NewQuizUsecase(c.Sessions, backend, gen, attemptRepo, logger)
	c.Community = usecase.NewCommunityUsecase(c.Sessions, backend, c.Hub, logger)

	c.Sessions.Attach(c.Courses)
	c.Sessions.Attach(c.Quizzes)

	return c, nil
}

func (c *Container) sessionRepository(ctx context.Context) (repository.SessionRepository, error) {
	if !c.Config.Redis.Enabled {
		return repository.NewMemorySessionRepository(c.Config.Session.TTL), nil
	}
	c.Redis = cache.NewRedis(ctx, c.Config.Redis, c.Logger)
	if !c.Redis.Available() {
		return repository.NewMemorySessionRepository(c.Config.Session.TTL), nil
	}
	c.Logger.Info(ctx, "sessions stored in redis", "host", c.Config.Redis.Host)
	return repository.NewRedisSessionRepository(c.Redis, c.Config.Session.TTL), nil
}

func (c *Container) attemptRepository(ctx context.Context) (repository.QuizAttemptRepository, error) {
	if !c.Config.Database.Enabled() {
		return repository.NewMemoryQuizAttemptRepository(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := migration.Default().Run(connectCtx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if c.Config.Database.Seed {
		if err := seeder.Default().Run(connectCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	c.DB = db
	c.Logger.Info(ctx, "quiz attempts stored in postgres", "host", c.Config.Database.DBHost)
	return repository.NewPostgresQuizAttemptRepository(db), nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
