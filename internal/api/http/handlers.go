package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/service"
)

const dateLayout = "2006-01-02"

// Handler exposes the engine's operations as a JSON API.
type Handler struct {
	reservations service.ReservationService
	payments     service.PaymentService
	refunds      service.RefundService
	loyalty      service.LoyaltyService
	priceCache   service.PriceCacheService
}

func NewHandler(
	reservations service.ReservationService,
	payments service.PaymentService,
	refunds service.RefundService,
	loyalty service.LoyaltyService,
	priceCache service.PriceCacheService,
) *Handler {
	return &Handler{
		reservations: reservations,
		payments:     payments,
		refunds:      refunds,
		loyalty:      loyalty,
		priceCache:   priceCache,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.E(domain.KindValidation, "invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func parseDate(raw, name string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.E(domain.KindValidation, "invalid %s %q, expected YYYY-MM-DD", name, raw)
	}
	return t, nil
}

// maxPage keeps (page-1)*pageSize comfortably inside int32 for the OFFSET
// arithmetic in the repositories.
const maxPage = 1_000_000

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			if v > maxPage {
				v = maxPage
			}
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"), "start")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"), "end")
	if err != nil {
		writeError(w, r, err)
		return
	}

	available, conflicts, err := h.reservations.CheckAvailability(r.Context(), vehicleID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicle_id": vehicleID,
		"available":  available,
		"conflicts":  conflicts,
	})
}

func (h *Handler) GroupMinimums(w http.ResponseWriter, r *http.Request) {
	data, computedAt, err := h.priceCache.GroupMinimums(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":        data,
		"computed_at": computedAt,
	})
}

type createReservationRequest struct {
	VehicleID  int32    `json:"vehicle_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	ExtraIDs   []string `json:"extra_ids"`
	CouponCode string   `json:"coupon_code"`
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rsv, err := h.reservations.Create(r.Context(), service.CreateReservationInput{
		UserID:     claimsFrom(r).UserID,
		VehicleID:  req.VehicleID,
		StartDate:  start,
		EndDate:    end,
		ExtraIDs:   req.ExtraIDs,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rsv)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rsv, err := h.reservations.Get(r.Context(), claimsFrom(r).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

func (h *Handler) GetReservationByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		writeError(w, r, domain.E(domain.KindValidation, "reservation code is required"))
		return
	}
	rsv, err := h.reservations.GetByCode(r.Context(), claimsFrom(r).UserID, code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

func (h *Handler) ListReservationPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := h.payments.ListForReservation(r.Context(), claimsFrom(r).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": payments})
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.reservations.ListByUser(r.Context(), claimsFrom(r).UserID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Data: items, Meta: listMeta{Page: page, PageSize: pageSize, Total: total}})
}

type extendReservationRequest struct {
	NewEndDate string `json:"new_end_date"`
}

func (h *Handler) ExtendReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req extendReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	newEnd, err := parseDate(req.NewEndDate, "new_end_date")
	if err != nil {
		writeError(w, r, err)
		return
	}

	rsv, err := h.reservations.Extend(r.Context(), claimsFrom(r).UserID, id, newEnd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rsv, err := h.reservations.Cancel(r.Context(), claimsFrom(r).UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rsv, err := h.reservations.CheckIn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

type checkOutRequest struct {
	CaptureDeposit bool `json:"capture_deposit"`
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	rsv, err := h.reservations.CheckOut(r.Context(), id, req.CaptureDeposit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsv)
}

type reviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	review, err := h.reservations.AddReview(r.Context(), claimsFrom(r).UserID, id, req.Rating, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type createPaymentRequest struct {
	ReservationID int32  `json:"reservation_id"`
	AmountCents   int64  `json:"amount_cents"`
	Method        string `json:"payment_method"`
	Channel       string `json:"payment_channel"`
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	channel := domain.PaymentChannel(req.Channel)
	if channel == "" {
		channel = domain.PaymentChannelOnline
	}

	payment, err := h.payments.CreatePayment(r.Context(), service.CreatePaymentInput{
		ReservationID: req.ReservationID,
		UserID:        claimsFrom(r).UserID,
		AmountCents:   req.AmountCents,
		Method:        req.Method,
		Channel:       channel,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.payments.ConfirmPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *Handler) FailPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.payments.FailPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

type createRefundRequest struct {
	ReservationID *int32 `json:"reservation_id"`
	PaymentID     *int32 `json:"payment_id"`
	Reason        string `json:"reason"`
}

func (h *Handler) CreateRefundRequest(w http.ResponseWriter, r *http.Request) {
	var req createRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	refund, err := h.refunds.CreateRequest(r.Context(), service.CreateRefundInput{
		UserID:        claimsFrom(r).UserID,
		ReservationID: req.ReservationID,
		PaymentID:     req.PaymentID,
		Reason:        req.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, refund)
}

func (h *Handler) ListRefundRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.refunds.ListByUser(r.Context(), claimsFrom(r).UserID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Data: items, Meta: listMeta{Page: page, PageSize: pageSize, Total: total}})
}

func (h *Handler) ListRefundRequestsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.RefundStatus(mux.Vars(r)["status"])
	switch status {
	case domain.RefundStatusPending, domain.RefundStatusApproved, domain.RefundStatusRejected, domain.RefundStatusProcessed:
	default:
		writeError(w, r, domain.E(domain.KindValidation, "unknown refund status %q", status))
		return
	}
	page, pageSize := pagination(r)
	items, total, err := h.refunds.ListByStatus(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Data: items, Meta: listMeta{Page: page, PageSize: pageSize, Total: total}})
}

type transitionRefundRequest struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	RefundAmountCents *int64 `json:"refund_amount_cents,omitempty"`
}

func (h *Handler) TransitionRefund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req transitionRefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}

	refund, err := h.refunds.Transition(r.Context(), id, domain.RefundStatus(req.Status), claimsFrom(r).UserID, req.Message, req.RefundAmountCents)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refund)
}

func (h *Handler) RefundAudit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	entries, err := h.refunds.Audit(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

type redeemRequest struct {
	Points      int64  `json:"points"`
	Description string `json:"description"`
}

func (h *Handler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.E(domain.KindValidation, "invalid request body"))
		return
	}
	adj, err := h.loyalty.Redeem(r.Context(), claimsFrom(r).UserID, req.Points, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, adj)
}

func (h *Handler) LoyaltySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.loyalty.Summary(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
