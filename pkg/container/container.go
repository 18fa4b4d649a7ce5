package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"codecamp-backend/internal/config"
	campHandler "codecamp-backend/internal/domains/camp/handler"
	"codecamp-backend/internal/domains/camp/mapper"
	campRepo "codecamp-backend/internal/domains/camp/repository"
	campService "codecamp-backend/internal/domains/camp/service"
	opsHandler "codecamp-backend/internal/domains/operations/handler"
	infraCache "codecamp-backend/internal/infrastructure/cache"
	"codecamp-backend/internal/infrastructure/database"
	"codecamp-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton

	ConfigStore *config.Store        // Reloadable config
	Config      *config.Config       // Snapshot lúc khởi động (port, driver...)
	DB          *database.PostgresDB // nil khi STORE_DRIVER=memory
	Cache       cache.Cache          // Redis hoặc no-op

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	// Factory stateless; mỗi request lấy unit-of-work riêng qua New()

	CampRepos campRepo.Factory
	Mapper    *mapper.Mapper

	// ========================================
	// SERVICE LAYER
	// ========================================

	CampService    campService.CampServiceInterface
	TalkService    campService.TalkServiceInterface
	SpeakerService campService.SpeakerServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	CampHandler       *campHandler.CampHandler
	TalkHandler       *campHandler.TalkHandler
	SpeakerHandler    *campHandler.SpeakerHandler
	OperationsHandler *opsHandler.OperationsHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache)
// 3. Repositories + Mapper
// 4. Services
// 5. Handlers
func NewContainer(envFiles ...string) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	store, err := config.NewStore(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.ConfigStore = store
	c.Config = store.Current()

	// ========================================
	// STEP 2: INITIALIZE INFRASTRUCTURE
	// ========================================
	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initCache()

	// ========================================
	// STEP 3: REPOSITORIES + MAPPER
	// ========================================
	if err := c.initRepositories(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	// Mapper tables được validate một lần lúc startup
	m, err := mapper.New()
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to build mapper: %w", err)
	}
	c.Mapper = m

	// ========================================
	// STEP 4 + 5: SERVICES, HANDLERS
	// ========================================
	c.initServices()
	c.initHandlers()

	log.Info().
		Str("environment", c.Config.App.Environment).
		Str("store_driver", c.Config.App.StoreDriver).
		Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	if c.Config.App.StoreDriver == "memory" {
		log.Warn().Msg("🗄️  STORE_DRIVER=memory - data is not persisted")
		return nil
	}

	log.Info().Msg("🗄️  Connecting to PostgreSQL...")
	db := database.NewPostgresDB(c.Config.Database.DBConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := campRepo.EnsureSchema(ctx, db.Pool); err != nil {
		return err
	}

	log.Info().Msg("✅ Database connected")
	return nil
}

// initCache: Redis failure không critical - fallback sang no-op cache
func (c *Container) initCache() {
	if c.Config.Redis.Host == "" {
		log.Info().Msg("🔴 REDIS_HOST not set - view cache disabled")
		c.Cache = cache.NewNoop()
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), view cache disabled")
		_ = rc.Close()
		c.Cache = cache.NewNoop()
		return
	}

	log.Info().Str("host", c.Config.Redis.Host).Msg("✅ Redis connected")
	c.Cache = rc
}

func (c *Container) initRepositories() error {
	if c.DB != nil {
		c.CampRepos = campRepo.NewPostgresFactory(c.DB.Pool)
		return nil
	}

	store := campRepo.NewMemoryStore()
	if c.Config.IsDevelopment() {
		seeded, err := campRepo.Seed(context.Background(), store)
		if err != nil {
			return err
		}
		if seeded {
			log.Info().Msg("🌱 Memory store seeded with sample camp")
		}
	}
	c.CampRepos = store
	return nil
}

func (c *Container) initServices() {
	// TTL đọc từ snapshot hiện tại để reloadconfig có tác dụng
	ttl := func() time.Duration { return c.ConfigStore.Current().Cache.CampTTL }

	c.CampService = campService.NewCampService(c.CampRepos, c.Mapper, c.Cache, ttl)
	c.TalkService = campService.NewTalkService(c.CampRepos, c.Mapper, c.Cache)
	c.SpeakerService = campService.NewSpeakerService(c.CampRepos, c.Mapper)
}

func (c *Container) initHandlers() {
	c.CampHandler = campHandler.NewCampHandler(c.CampService)
	c.TalkHandler = campHandler.NewTalkHandler(c.TalkService)
	c.SpeakerHandler = campHandler.NewSpeakerHandler(c.SpeakerService)
	c.OperationsHandler = opsHandler.NewOperationsHandler(c.ConfigStore, c.Config.App.Version, c.healthChecks())
}

func (c *Container) healthChecks() map[string]opsHandler.CheckFunc {
	checks := map[string]opsHandler.CheckFunc{
		"cache": c.Cache.Ping,
	}
	if c.DB != nil {
		checks["database"] = c.DB.HealthCheck
	}
	return checks
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		} else {
			log.Info().Msg("✅ Database connections closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}
}
