package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/samandr77/microservices/compliance/docs" //nolint:revive,nolintlint
)

func NewRouter(h *Handler, mw *Middleware, metrics http.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors, mw.WithIP, mw.Metrics)

	if metrics != nil {
		router.Handle("/metrics", metrics)
	}

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/health", h.Health)
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Get("/dashboard", h.Dashboard)
			r.Get("/milestones", h.Milestones)

			r.Route("/permits", func(r chi.Router) {
				r.Get("/", h.ListPermits)
				r.Post("/", h.CreatePermit)
				r.Post("/analyze", h.AnalyzeDocument)
				r.Get("/export", h.ExportPermits)
				r.Get("/{id}", h.GetPermit)
				r.Put("/{id}", h.UpdatePermit)
				r.Delete("/{id}", h.DeletePermit)
				r.Get("/{id}/document", h.PermitDocument)
			})

			r.Route("/conditions", func(r chi.Router) {
				r.Get("/", h.ListConditions)
				r.Post("/", h.CreateCondition)
				r.Get("/{id}", h.GetCondition)
				r.Put("/{id}", h.UpdateCondition)
				r.Delete("/{id}", h.DeleteCondition)
				r.Post("/{id}/evidence", h.UploadEvidence)
			})

			r.Route("/evidence", func(r chi.Router) {
				r.Get("/", h.ListEvidence)
				r.Get("/{id}/file", h.EvidenceFile)
				r.Put("/{id}", h.UpdateEvidence)
				r.Delete("/{id}", h.DeleteEvidence)
			})

			r.Get("/reports/{kind}", h.Report)
			r.Get("/reports/{kind}/export", h.ExportReport)

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.Get("/alerts", h.GetAlerts)
			r.Put("/alerts", h.UpdateAlerts)

			r.Route("/assistant", func(r chi.Router) {
				r.Use(mw.Session)

				r.Get("/suggestions", h.Suggestions)
				r.Get("/messages", h.Transcript)
				r.Post("/messages", h.Ask)
				r.Delete("/messages", h.ResetConversation)
			})

			r.Get("/system/logs", h.SystemLogs)
		})
	})

	return router
}
