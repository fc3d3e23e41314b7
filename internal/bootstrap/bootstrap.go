package bootstrap

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/skillhub/internal/app/controllers"
	"github.com/yigit/skillhub/internal/app/notify"
	appRoutes "github.com/yigit/skillhub/internal/app/routes"
	appServices "github.com/yigit/skillhub/internal/app/services"
	"github.com/yigit/skillhub/internal/app/views"
	"github.com/yigit/skillhub/internal/config"
	appMiddleware "github.com/yigit/skillhub/internal/middleware"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/helpers"
	"github.com/yigit/skillhub/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Client            *apiclient.Client
	Services          *appServices.Services
	Flashes           notify.Store
	Registry          *prometheus.Registry
	Renderer          *views.Renderer
	Env               *appControllers.Env
	HomeController    *appControllers.HomeController
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController
	CSRFKey           []byte
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupFlashStore connects to Redis when it is configured and falls back to
// an in-process store otherwise. The returned client is nil for the fallback.
func SetupFlashStore(cfg *config.Config, lgr zerolog.Logger) (notify.Store, *redis.Client, error) {
	ttl := helpers.ParseDuration(cfg.Redis.FlashTTL, 5*time.Minute)

	if !cfg.RedisEnabled() {
		lgr.Warn().Msg("No Redis address configured, keeping notifications in memory")
		return notify.NewMemoryStore(ttl), nil, nil
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to Redis...")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store := notify.NewRedisStore(client, ttl)
	if err := store.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping Redis")
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	lgr.Info().Msg("Redis connection successfully established.")

	return store, client, nil
}

// BuildDependencies initializes the API client, services, and controllers.
func BuildDependencies(cfg *config.Config, flashes notify.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, Flashes: flashes}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := apiclient.NewMetrics(deps.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register client metrics: %w", err)
	}

	deps.Client = apiclient.New(cfg.APIBase(),
		apiclient.WithLogger(logger.For("apiclient")),
		apiclient.WithMetrics(metrics),
	)
	lgr.Info().Str("api", deps.Client.Path("")).Msg("Backend API configured")

	deps.Services = appServices.NewServices(deps.Client, logger.For("services"))

	deps.Renderer, err = views.NewRenderer()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	deps.CSRFKey, err = csrfKey(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.Env = appControllers.NewEnv(flashes, logger.For("pages"))
	deps.HomeController = appControllers.NewHomeController(deps.Env, deps.Services.Dashboard)
	deps.StudentController = appControllers.NewStudentController(deps.Env, deps.Services.Students, deps.Services.Enrollments)
	deps.CourseController = appControllers.NewCourseController(deps.Env, deps.Services.Courses, deps.Services.Enrollments)

	return deps, nil
}

// csrfKey returns the configured key, or a random one outside production.
func csrfKey(cfg *config.Config, lgr zerolog.Logger) ([]byte, error) {
	if cfg.Security.CSRFKey != "" {
		return []byte(cfg.Security.CSRFKey), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate csrf key: %w", err)
	}
	lgr.Warn().Msg("No CSRF key configured, using a random key; forms expire on restart")
	return key, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.HTMLRender = deps.Renderer
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(lgr),
	)

	// Probes stay outside the session and CSRF layers
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	router.Use(
		appMiddleware.Session(cfg.Server.SecureCookies),
		appMiddleware.CSRF(deps.CSRFKey, cfg.Server.SecureCookies, lgr),
	)

	appRoutes.SetupRouter(router,
		deps.Env,
		deps.HomeController,
		deps.StudentController,
		deps.CourseController,
	)

	return router
}
