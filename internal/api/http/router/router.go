package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/habitkeeper-server/internal/api/http/handler"
	"github.com/dtroode/habitkeeper-server/internal/api/http/middleware"
	"github.com/dtroode/habitkeeper-server/internal/logger"
	"github.com/dtroode/habitkeeper-server/internal/model"
	"github.com/dtroode/habitkeeper-server/internal/service"
)

// Router wires HTTP handlers and middleware into a request multiplexer.
type Router struct {
	authService    *service.Auth
	habitService   *service.Habit
	ledgerService  *service.Ledger
	tokenService   *service.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	habitService *service.Habit,
	ledgerService *service.Ledger,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		habitService:   habitService,
		ledgerService:  ledgerService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route tree. The /auth subtree is public; everything
// under /habits requires a valid bearer token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	habitHandler := handler.NewHabit(r.habitService, r.ledgerService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/auth", func(ar chi.Router) {
		ar.Post("/signup", authHandler.Signup)
		ar.Post("/login", authHandler.Login)
	})

	mux.Route("/habits", func(hr chi.Router) {
		hr.Use(authenticate.Handle)
		hr.Get("/", habitHandler.List)
		hr.Post("/", habitHandler.Create)
		hr.Delete("/{habitID}", habitHandler.Delete)
		hr.Post("/{habitID}/complete", habitHandler.Complete)
		hr.Get("/{habitID}/status", habitHandler.Status)
		hr.Get("/{habitID}/history", habitHandler.History)
	})

	return mux
}
