package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/paperdesk/internal/api/http/handler"
	"github.com/dtroode/paperdesk/internal/api/http/middleware"
	"github.com/dtroode/paperdesk/internal/api/http/response"
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// Options holds transport settings of the router.
type Options struct {
	CORSOrigin     string
	MaxUploadBytes int64
	Cookies        handler.CookieOptions
}

// Services bundles the collaborators exposed over HTTP.
type Services struct {
	Registration handler.RegistrationService
	Auth         handler.AuthService
	Sessions     handler.SessionService
	Papers       handler.PaperService
	Tokens       middleware.TokenService
	Database     handler.Pinger
}

// Router builds the HTTP routing tree of the portal.
type Router struct {
	services       Services
	contextManager model.ContextManager
	opts           Options
	logger         *logger.Logger
}

// New creates new Router instance.
func New(services Services, contextManager model.ContextManager, opts Options, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		opts:           opts,
		logger:         logger,
	}
}

// Register builds the handler with middleware and every route mounted
// under /api/v1.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)

	users := handler.NewUser(r.services.Registration, r.services.Auth, r.services.Sessions, r.contextManager, r.opts.Cookies, r.logger)
	papers := handler.NewPaper(r.services.Papers, r.contextManager, r.opts.MaxUploadBytes, r.logger)
	health := handler.NewHealth(r.services.Database, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(middleware.CORS(r.opts.CORSOrigin))

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apierrors.NewNotFound("Route not found"))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, apierrors.NewNotFound("Route not found"))
	})

	mux.Route("/api/v1", func(api chi.Router) {
		api.Route("/healthcheck", func(hc chi.Router) {
			hc.Get("/", health.Check)
			hc.Get("/heart", health.Heart)
		})

		api.Route("/users", func(u chi.Router) {
			u.Post("/register", users.Register)
			u.Post("/verify-otp", users.VerifyOTP)
			u.Post("/resend-otp", users.ResendOTP)
			u.Post("/login", users.Login)
			u.Post("/refresh-token", users.RefreshToken)

			u.Group(func(p chi.Router) {
				p.Use(authenticate.Handle)
				p.Post("/logout", users.Logout)
				p.Get("/me", users.Me)
			})
		})

		api.Route("/papers", func(p chi.Router) {
			p.Use(authenticate.Handle)

			p.Post("/submit", papers.Submit)
			p.Put("/update/{paperId}", papers.Update)
			p.Delete("/delete/{paperId}", papers.Delete)
			p.Get("/user/{email}", papers.ListByAuthor)

			p.Group(func(a chi.Router) {
				a.Use(authenticate.RequireAdmin)
				a.Put("/status/{paperId}", papers.SetStatus)
				a.Get("/", papers.ListAll)
			})
		})
	})

	return mux
}
