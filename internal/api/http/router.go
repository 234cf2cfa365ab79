package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Alceujrab/sisloc-sub000/internal/security"
)

// NewRouter wires every engine operation under /api/v1 behind bearer auth.
// Only /health is public.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	root := mux.NewRouter()
	root.Use(LoggingMiddleware)
	root.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/vehicles/{id}/availability", h.CheckAvailability).Methods(http.MethodGet)
	api.HandleFunc("/pricing/group-minimums", h.GroupMinimums).Methods(http.MethodGet)

	api.HandleFunc("/reservations", h.CreateReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations", h.ListReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/code/{code}", h.GetReservationByCode).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", h.GetReservation).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}/payments", h.ListReservationPayments).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}/extend", h.ExtendReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/cancel", h.CancelReservation).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/checkin", AdminOnly(h.CheckIn)).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/checkout", AdminOnly(h.CheckOut)).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{id}/review", h.AddReview).Methods(http.MethodPost)

	api.HandleFunc("/payments", h.CreatePayment).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id}/confirm", AdminOnly(h.ConfirmPayment)).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id}/fail", AdminOnly(h.FailPayment)).Methods(http.MethodPost)

	api.HandleFunc("/refunds", h.CreateRefundRequest).Methods(http.MethodPost)
	api.HandleFunc("/refunds", h.ListRefundRequests).Methods(http.MethodGet)
	api.HandleFunc("/refunds/status/{status}", AdminOnly(h.ListRefundRequestsByStatus)).Methods(http.MethodGet)
	api.HandleFunc("/refunds/{id}/transition", AdminOnly(h.TransitionRefund)).Methods(http.MethodPost)
	api.HandleFunc("/refunds/{id}/audit", AdminOnly(h.RefundAudit)).Methods(http.MethodGet)

	api.HandleFunc("/loyalty/redeem", h.RedeemPoints).Methods(http.MethodPost)
	api.HandleFunc("/loyalty/summary", h.LoyaltySummary).Methods(http.MethodGet)

	return root
}
