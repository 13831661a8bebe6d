package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/handlers"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/middleware"
)

// SetupRoutes wires every HTTP endpoint onto the router. Write operations on
// teams, rounds, matches and champions are admin only; palpites and champion
// picks belong to the authenticated participant.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	roundHandler *handlers.RoundHandler,
	bolaoHandler *handlers.BolaoHandler,
	matchHandler *handlers.MatchHandler,
	predictionHandler *handlers.PredictionHandler,
	championHandler *handlers.ChampionHandler,
	rankingHandler *handlers.RankingHandler,
	wsHandler *handlers.WebsocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/{userID}", userHandler.GetByID)
			r.Put("/{userID}", userHandler.Update)
			r.With(middleware.RequireAdmin).Delete("/{userID}", userHandler.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Get("/{teamID}", teamHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", teamHandler.Create)
				r.Put("/{teamID}", teamHandler.Update)
				r.Delete("/{teamID}", teamHandler.Delete)
				r.Post("/{teamID}/badge", teamHandler.UploadBadge)
			})
		})

		r.Route("/rounds", func(r chi.Router) {
			r.Get("/", roundHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", roundHandler.Create)
				r.Put("/{roundID}", roundHandler.Update)
				r.Delete("/{roundID}", roundHandler.Delete)
			})
		})

		r.Route("/boloes", func(r chi.Router) {
			r.Get("/", bolaoHandler.List)
			r.Post("/", bolaoHandler.Create)

			r.Route("/{bolaoID}", func(r chi.Router) {
				r.Get("/", bolaoHandler.GetByID)
				r.Put("/", bolaoHandler.Update)
				r.Delete("/", bolaoHandler.Delete)
				r.Put("/points", bolaoHandler.UpdatePointConfig)

				r.Post("/participants", bolaoHandler.AddParticipant)
				r.Delete("/participants/{userID}", bolaoHandler.RemoveParticipant)

				r.Get("/matches", matchHandler.ListByBolao)
				r.With(middleware.RequireAdmin).Post("/matches", matchHandler.Create)

				r.Get("/campeoes", championHandler.ListByBolao)
				r.With(middleware.RequireAdmin).Post("/campeoes", championHandler.Create)

				r.Get("/ranking", rankingHandler.Get)
				r.Get("/ws", wsHandler.Subscribe)
			})
		})

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", matchHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Put("/", matchHandler.Update)
				r.Delete("/", matchHandler.Delete)
				r.Post("/status", matchHandler.TransitionStatus)
			})

			r.Post("/palpites", predictionHandler.Upsert)
			r.Get("/palpites", predictionHandler.ListByMatch)
			r.Get("/palpites/me", predictionHandler.GetMine)
		})

		r.Route("/campeoes/{championID}", func(r chi.Router) {
			r.Get("/", championHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Put("/", championHandler.Update)
				r.Delete("/", championHandler.Delete)
				r.Post("/result", championHandler.SetResult)
				r.Delete("/result", championHandler.ClearResult)
			})

			r.Post("/picks", championHandler.UpsertPick)
			r.Get("/picks", championHandler.ListPicks)
		})
	})
}
