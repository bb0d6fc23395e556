package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/careerguide-server/internal/api/http/handler"
	"github.com/dtroode/careerguide-server/internal/api/http/middleware"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/model"
)

// Options holds the settings that shape the HTTP surface.
type Options struct {
	AppName        string
	MailSender     string
	MaxUploadBytes int64
	// Details echoes the cause of 500 responses to clients.
	Details bool
}

// Router represents the HTTP router for CareerGuide operations.
// It wires handlers, the session guard and request middleware.
type Router struct {
	authService    handler.AuthService
	profileService handler.ProfileService
	filesService   handler.FilesService
	verifier       middleware.TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
	opts           Options
}

// New creates new Router instance.
//
// Parameters:
//   - authService: The account workflows
//   - profileService: The profile read and update service
//   - filesService: The avatar and document service
//   - verifier: Verifies bearer tokens for protected routes
//   - contextManager: Carries the verified identity to handlers
//   - logger: The logger for request logging
//   - opts: Surface settings
//
// Returns a pointer to the newly created Router instance.
func New(
	authService handler.AuthService,
	profileService handler.ProfileService,
	filesService handler.FilesService,
	verifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	logger *logger.Logger,
	opts Options,
) *Router {
	return &Router{
		authService:    authService,
		profileService: profileService,
		filesService:   filesService,
		verifier:       verifier,
		contextManager: contextManager,
		logger:         logger,
		opts:           opts,
	}
}

// Register builds the route tree. Every route except the health check and
// /auth/* requires a bearer token.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.NewLogging(r.logger).Handler)
	mux.Use(middleware.NewRecover(r.logger).Handler)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.NotFound(handler.NotFound)
	mux.MethodNotAllowed(handler.NotFound)

	mux.Get("/", handler.NewHealth(r.opts.AppName, r.opts.MailSender).Status)
	r.registerAuthRoutes(mux)

	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger)
	mux.Group(func(protected chi.Router) {
		protected.Use(authenticate.Handler)
		r.registerUserRoutes(protected)
		r.registerFileRoutes(protected)
	})

	return mux
}

func (r *Router) registerAuthRoutes(mux chi.Router) {
	h := handler.NewAuth(r.authService, r.logger, r.opts.Details)
	mux.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", h.Register)
		auth.Post("/login", h.Login)
		auth.Post("/verify-email", h.VerifyEmail)
	})
}

func (r *Router) registerUserRoutes(mux chi.Router) {
	h := handler.NewUsers(r.profileService, r.contextManager, r.logger, r.opts.Details)
	mux.Get("/users/{uid}", h.Get)
	mux.Put("/users/{uid}", h.Update)
}

func (r *Router) registerFileRoutes(mux chi.Router) {
	h := handler.NewFiles(r.filesService, r.contextManager, r.logger, r.opts.MaxUploadBytes, r.opts.Details)
	mux.Route("/file", func(file chi.Router) {
		file.Post("/upload-avatar", h.UploadAvatar)
		file.Post("/upload-document", h.UploadDocument)
		file.Post("/delete-document", h.DeleteDocument)
	})
}
