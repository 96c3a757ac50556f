package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shaggymission/adoption-web/internal/api/handler"
	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

// Dependencies is everything the router wires into handlers. Mongo and
// Redis are optional and only feed the readiness probe. Metrics defaults to
// the global Prometheus registerer.
type Dependencies struct {
	Log           zerolog.Logger
	Metrics       prometheus.Registerer
	Renderer      echo.Renderer
	Session       middleware.SessionConfig
	Sessions      *service.SessionManager
	Auth          handler.AuthService
	Dashboard     handler.DashboardService
	Collaborators handler.CollaboratorService
	Mongo         *mongo.Database
	Redis         *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "shaggy_http",
		Skipper:    operational,
		Registerer: deps.Metrics,
	}))

	// --- Operational routes (no session) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Browser routes ---
	web := e.Group("",
		echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
			TokenLookup:    "form:_csrf",
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSecure:   deps.Session.Secure,
			CookieSameSite: http.SameSiteLaxMode,
			Skipper:        apiRequest,
		}),
		middleware.Session(deps.Session, deps.Sessions),
	)

	authHandler := handler.NewAuthHandler(deps.Auth)
	pageHandler := handler.NewPageHandler(deps.Collaborators)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard, deps.Log)
	sessionHandler := handler.NewSessionAPIHandler()

	web.GET("/", pageHandler.Home)
	web.GET("/login", authHandler.LoginPage)
	web.POST("/login", authHandler.Login)
	web.GET("/register", authHandler.RegisterPage)
	web.POST("/register", authHandler.Register)
	web.GET("/forgot-password", authHandler.ForgotPasswordPage)
	web.POST("/forgot-password", authHandler.ForgotPassword)
	web.POST("/logout", authHandler.Logout)

	signedIn := middleware.RequireIdentity(service.PathHome)
	web.GET("/welcome", pageHandler.Welcome, signedIn)
	web.GET("/collaborator", pageHandler.Collaborator, signedIn)

	// --- Dashboard: identity, then the role resolved afresh on every request ---
	dash := web.Group(service.PathDashboard, middleware.RequireIdentity(service.PathLogin), middleware.ResolveRole())
	member := middleware.RequireRole(domain.RoleAdmin, domain.RoleContributor)
	admin := middleware.RequireRole(domain.RoleAdmin)

	dash.GET("", dashboardHandler.Show)
	dash.GET("/:section", dashboardHandler.Navigate, member, middleware.RequireSection())
	dash.GET("/pets/page/:page", dashboardHandler.PetsPage, member)
	dash.POST("/search", dashboardHandler.Search, member)
	dash.POST("/search/clear", dashboardHandler.ClearSearch, member)
	dash.POST("/pets", dashboardHandler.RegisterPet, member)
	dash.GET("/pets/:id/adopt", dashboardHandler.OpenAdopt, member)
	dash.POST("/adoptions", dashboardHandler.SubmitAdoption, member)
	dash.POST("/adoptions/cancel", dashboardHandler.CloseAdopt, member)

	dash.GET("/pets/:id/edit", dashboardHandler.StartEdit, admin)
	dash.POST("/pets/:id/edit/cancel", dashboardHandler.CancelEdit, admin)
	dash.POST("/pets/:id", dashboardHandler.UpdatePet, admin)
	dash.POST("/pets/:id/delete", dashboardHandler.DeletePet, admin)
	dash.GET("/users/page/:page", dashboardHandler.UsersPage, admin)
	dash.POST("/users/:id/delete", dashboardHandler.DeleteUser, admin)
	dash.POST("/adoption-requests/:id/:decision", dashboardHandler.DecideAdoption, admin)

	// --- JSON API ---
	apiGroup := web.Group("/api/v1", middleware.RequireIdentity(""), middleware.ResolveRole())
	apiGroup.GET("/session", sessionHandler.Get)

	return e
}

func operational(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func apiRequest(c echo.Context) bool {
	return isAPIRequest(c)
}

// requestLogger writes one access log entry per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		Skipper:      operational,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
