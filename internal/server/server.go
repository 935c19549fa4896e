package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jsp1440/orchid-continuum-sub004/internal/config"
	"github.com/jsp1440/orchid-continuum-sub004/internal/handlers"
	"github.com/jsp1440/orchid-continuum-sub004/internal/middleware"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(
	cfg config.Config,
	engine *services.Engine,
	orchidRepo repository.OrchidRepository,
	calendarRepo repository.CalendarRepository,
) *Server {
	orchidHandler := handlers.NewOrchidHandler(orchidRepo)
	calendarHandler := handlers.NewCalendarHandler(engine, orchidRepo, calendarRepo)
	catalogHandler := handlers.NewCatalogHandler(engine)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAPIToken(cfg.APIToken))

		r.Get("/genera", catalogHandler.Genera)

		r.Get("/orchids", orchidHandler.List)
		r.Post("/orchids", orchidHandler.Create)
		r.Get("/orchids/{id}", orchidHandler.Get)
		r.Get("/orchids/{id}/calendars", calendarHandler.ListForOrchid)
		r.Post("/orchids/{id}/calendars", calendarHandler.Generate)

		r.Get("/calendars/{id}", calendarHandler.Get)
		r.Delete("/calendars/{id}", calendarHandler.Delete)
		r.Get("/calendars/{id}/summary", calendarHandler.Summary)
		r.Get("/calendars/{id}/upcoming", calendarHandler.Upcoming)
		r.Post("/calendars/{id}/weather", calendarHandler.ApplyWeather)
		r.Post("/calendars/{id}/tasks/{taskID}/complete", calendarHandler.CompleteTask)
		r.Get("/calendars/{id}/export/{format}", calendarHandler.Export)
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
