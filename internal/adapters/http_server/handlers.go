package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hjnengare/sayso-web-sub011/internal/app"
)

type Handlers struct {
	Businesses *app.BusinessService
	Reviews    *app.ReviewService
	Claims     *app.ClaimService
	Saved      *app.SavedService
	Messages   *app.MessageService
	Notifs     *app.NotificationService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// public reads
	s.mux.Get("/v1/businesses", h.listBusinesses)
	s.mux.Get("/v1/businesses/{id}", h.getBusiness)
	s.mux.Get("/v1/businesses/{id}/reviews", h.listReviews)

	// authenticated
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth)

		r.Post("/v1/businesses", h.createBusiness)
		r.Put("/v1/businesses/{id}", h.updateBusiness)
		r.Delete("/v1/businesses/{id}", h.deleteBusiness)

		r.Post("/v1/businesses/{id}/reviews", h.submitReview)
		r.Delete("/v1/reviews/{id}", h.deleteReview)
		r.Post("/v1/reviews/{id}/flag", h.flagReview)

		r.Post("/v1/businesses/{id}/claims", h.createClaim)
		r.Get("/v1/claims/{id}", h.getClaim)
		r.Post("/v1/claims/{id}/otp/send", h.sendOTP)
		r.Post("/v1/claims/{id}/otp/verify", h.verifyOTP)

		r.Post("/v1/saved/{businessID}", h.saveItem)
		r.Delete("/v1/saved/{businessID}", h.unsaveItem)
		r.Get("/v1/saved", h.listSaved)
		r.Get("/v1/saved/count", h.savedCount)

		r.Post("/v1/conversations", h.startConversation)
		r.Get("/v1/conversations", h.listConversations)
		r.Post("/v1/conversations/{id}/messages", h.sendMessage)
		r.Get("/v1/conversations/{id}/messages", h.listMessages)

		r.Get("/v1/notifications", h.listNotifications)
		r.Get("/v1/notifications/unread-count", h.unreadCount)
		r.Post("/v1/notifications/{id}/read", h.markRead)
		r.Post("/v1/notifications/read-all", h.markAllRead)
	})

	// admin moderation
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAdmin)

		r.Get("/v1/admin/reviews/flagged", h.listFlagged)
		r.Post("/v1/admin/reviews/{id}/moderate", h.moderateReview)
		r.Post("/v1/admin/claims/{id}/approve", h.approveClaim)
		r.Post("/v1/admin/claims/{id}/reject", h.rejectClaim)
	})
}
