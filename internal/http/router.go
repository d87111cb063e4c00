package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"jot/internal/auth"
	"jot/internal/config"
	"jot/internal/http/handler"
	mw "jot/internal/http/middleware"
	"jot/internal/memo"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc, db)).Get("/me", me.Me)

	rh := &handler.ResourceHandler{DB: db}
	r.Route("/resources", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc, db))

		r.Post("/", rh.Create)
		r.Get("/", rh.List)
	})

	memoSvc := memo.NewService(db)
	memoH := &handler.MemoHandler{Svc: memoSvc}
	memoRead := &handler.MemoReadHandler{Svc: memoSvc}

	r.Route("/memos", func(r chi.Router) {
		// reads allow anonymous callers; public memos are world-readable
		r.Group(func(r chi.Router) {
			r.Use(auth.WithAuth(jwtSvc, db))

			r.Get("/", memoRead.List)
			r.Get("/stats", memoRead.Stats)
			r.Get("/{id}", memoRead.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(jwtSvc, db))

			r.Post("/", memoH.Create)
			r.Patch("/{id}", memoH.Update)
			r.Delete("/{id}", memoH.Delete)
		})
	})

	return r
}
