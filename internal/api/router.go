package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/forohub/internal/api/handlers"
	"github.com/baharkarakas/forohub/internal/config"
	"github.com/baharkarakas/forohub/internal/metrics"
	"github.com/baharkarakas/forohub/internal/middleware"
	"github.com/baharkarakas/forohub/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	UserSvc  *services.UserService
	TopicSvc *services.TopicService
	Auth     *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recover,
		middleware.AccessLog,
		middleware.HTTPMetrics,
		middleware.RateLimit(d.Cfg.RateRPS, d.Cfg.RateBurst),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authH := handlers.NewAuthHandler(d.UserSvc)
	userH := handlers.NewUserHandler(d.UserSvc)
	topicH := handlers.NewTopicHandler(d.TopicSvc)

	r.Post("/login", authH.Login)
	r.Post("/usuarios/registro", userH.Register)

	r.Group(func(r chi.Router) {
		r.Use(d.Auth.Authenticate)

		r.Route("/topicos", func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/", topicH.Create)
			r.Get("/", topicH.List)
			r.Get("/buscar", topicH.Search)
			r.Get("/{id}", topicH.Get)
			r.Put("/{id}", topicH.Update)
			r.Delete("/{id}", topicH.Close)
			r.Get("/{id}/historial", topicH.History)
			r.Post("/{id}/mensajes", topicH.AddMessage)
			r.Delete("/{id}/mensajes/{messageID}", topicH.RemoveMessage)
		})
	})

	return r
}
