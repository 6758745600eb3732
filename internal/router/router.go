package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dentalcare/clinic-api/internal/config"
	"github.com/dentalcare/clinic-api/internal/handler"
	authhandler "github.com/dentalcare/clinic-api/internal/handler/auth"
	"github.com/dentalcare/clinic-api/internal/middleware"
	"github.com/dentalcare/clinic-api/pkg/auth"
	"github.com/dentalcare/clinic-api/pkg/logger"
	"github.com/dentalcare/clinic-api/pkg/metrics"
)

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth        *authhandler.Handler
	Patient     RouteRegistrar
	Appointment RouteRegistrar
	Settings    RouteRegistrar
}

// New assembles the gin engine: global middleware, the public auth and
// health endpoints, and the account-scoped API behind the token gate.
func New(
	cfg *config.Config,
	log *logger.Logger,
	db *sqlx.DB,
	tokens auth.TokenService,
	m *metrics.Metrics,
	h Handlers,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.CORS(cfg.Security.AllowedOrigins))
	engine.Use(middleware.Metrics(m))
	if cfg.RateLimit.Enabled {
		engine.Use(middleware.RateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	v1 := engine.Group("/api/v1")

	handler.NewHealthHandler(db).RegisterRoutes(v1)
	h.Auth.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(tokens))
	{
		h.Auth.RegisterProtectedRoutes(protected)
		h.Patient.RegisterRoutes(protected)
		h.Appointment.RegisterRoutes(protected)
		h.Settings.RegisterRoutes(protected)
	}

	return engine
}
