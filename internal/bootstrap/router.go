package bootstrap

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	adminshttp "github.com/civicspark/civic-site/internal/admins/http"
	adminsmw "github.com/civicspark/civic-site/internal/admins/middleware"
	"github.com/civicspark/civic-site/internal/admins/service"
	httpapi "github.com/civicspark/civic-site/internal/api/http"
	"github.com/civicspark/civic-site/internal/api/http/middleware"
	contenthttp "github.com/civicspark/civic-site/internal/content/http"
	"github.com/civicspark/civic-site/internal/stats"
	visitshttp "github.com/civicspark/civic-site/internal/visits/http"
)

// LoopbackProxies trusts forwarding only from the local host, where the web
// binary runs by default.
var LoopbackProxies = []string{"127.0.0.1", "::1"}

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	TrustedProxies []string // nil trusts no proxy
	Stores         *Stores
	Auth           *service.AuthService
	VisitLimiter   *visitshttp.IPLimiter
}

// BuildRouter assembles the REST API. Every resource lives under /api.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestID())
	if len(dep.AllowedOrigins) > 0 {
		r.Use(middleware.CORS(dep.AllowedOrigins))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Stores.Pool, dep.Stores.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	requireAdmin := adminsmw.RequireAdmin(dep.Auth)

	adminshttp.New(dep.Auth).Register(api)
	contenthttp.RegisterAll(api, dep.Stores.Content, requireAdmin)
	visitshttp.New(dep.Stores.Visits, dep.VisitLimiter).Register(api, requireAdmin)

	stats.New(stats.Counters{
		Projects: dep.Stores.Content.Projects,
		Events:   dep.Stores.Content.Events,
		Calendar: dep.Stores.Content.CalendarItems,
		Visits:   dep.Stores.Visits,
	}).Register(api, requireAdmin)

	return r
}

// NewMemoryRouter wires the API on fresh memory stores with no rate limit.
// Tests use it as a live backend.
func NewMemoryRouter() (*gin.Engine, *service.AuthService) {
	stores := MemoryStores(24 * time.Hour)
	auth := service.NewAuthService(stores.Admins, stores.Tokens)
	return BuildRouter(RouterDeps{
		ServiceName:    "civic-api",
		Version:        "test",
		TrustedProxies: LoopbackProxies,
		Stores:         stores,
		Auth:           auth,
	}), auth
}
