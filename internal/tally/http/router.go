package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/slogx"

	_ "github.com/aussiebroadwan/tally/api/tally" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the deployment specific parts of the HTTP surface.
type RouterConfig struct {
	// Prefix is where the API is mounted, e.g. "/api".
	Prefix      string
	FrontendURL string
	Version     string

	// Limiters builds the rate limiters; nil means in-process limiters.
	Limiters httpx.LimiterFactory

	// Cache, when set, is probed by /readyz.
	Cache Pinger
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       RouterConfig
	startTime time.Time
	logger    *slog.Logger

	store    store.Store
	Gate     *service.Gate
	Sessions *service.SessionService
	Expenses *service.ExpenseService
}

var userOrIP = httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)

func NewRouter(cfg RouterConfig, st store.Store, logger *slog.Logger) *Router {
	cfg.Prefix = "/" + strings.Trim(cfg.Prefix, "/")
	if cfg.Prefix == "/" {
		cfg.Prefix = ""
	}
	if cfg.Limiters == nil {
		cfg.Limiters = httpx.MemoryLimiters
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	// Outermost first: every request is logged, and panics inside the rate
	// limiter or handlers still get a response.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.SecureHeaders(),
		httpx.CORS(httpx.DefaultCORS(cfg.FrontendURL)),
		r.limit("global", httpx.GlobalLimit, httpx.IPKeyExtractor),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerExpenses()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", http.HandlerFunc(notFound))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Tally API
//	@version					0.1.0
//	@description				Personal expense tracking with short-lived access tokens and rotating refresh tokens.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tally
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit builds a rate limiter for a named profile from the configured backend.
func (r *Router) limit(name string, cfg httpx.RateLimitConfig, key httpx.KeyExtractor) httpx.Middleware {
	return httpx.RateLimit(r.cfg.Limiters(name, cfg), cfg, key)
}

func (r *Router) route(method, path string) string {
	return method + " " + r.cfg.Prefix + path
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Sessions: r.Sessions}

	// Credential endpoints - strict rate limit by IP (brute force)
	r.Mux.Handle(r.route("POST", "/auth/register"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limit("register", httpx.StrictLimit, httpx.IPKeyExtractor),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.limit("login", httpx.StrictLimit, httpx.IPKeyExtractor),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/refresh"),
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			r.limit("refresh", httpx.StrictLimit, httpx.IPKeyExtractor),
		),
	)

	r.Mux.Handle(r.route("POST", "/auth/logout"),
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			RequireUser(r.Gate),
			r.limit("logout", httpx.ModerateLimit, userOrIP),
		),
	)
	r.Mux.Handle(r.route("GET", "/auth/me"),
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			RequireUser(r.Gate),
			r.limit("me", httpx.LenientLimit, userOrIP),
		),
	)
}

func (r *Router) registerExpenses() {
	h := &ExpensesHandler{Expenses: r.Expenses}

	// Reads and writes share one budget per profile and user.
	reads := r.limit("expenses-read", httpx.LenientLimit, userOrIP)
	writes := r.limit("expenses-write", httpx.ModerateLimit, userOrIP)
	gate := RequireUser(r.Gate)

	r.Mux.Handle(r.route("POST", "/expenses"), httpx.Chain(http.HandlerFunc(h.HandleCreate), gate, writes))
	r.Mux.Handle(r.route("GET", "/expenses"), httpx.Chain(http.HandlerFunc(h.HandleList), gate, reads))
	r.Mux.Handle(r.route("GET", "/expenses/{id}"), httpx.Chain(http.HandlerFunc(h.HandleGet), gate, reads))
	r.Mux.Handle(r.route("PUT", "/expenses/{id}"), httpx.Chain(http.HandlerFunc(h.HandleUpdate), gate, writes))
	r.Mux.Handle(r.route("DELETE", "/expenses/{id}"), httpx.Chain(http.HandlerFunc(h.HandleDelete), gate, writes))
}

func (r *Router) registerSystem() {
	r.Mux.Handle(r.route("GET", "/health"), HealthHandler(time.Now))

	// Probes - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.Version),
			r.limit("livez", httpx.LenientLimit, httpx.IPKeyExtractor),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.Version, r.store, r.cfg.Cache),
			r.limit("readyz", httpx.LenientLimit, httpx.IPKeyExtractor),
		),
	)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteError(w, http.StatusNotFound, "Route not found", nil)
}
