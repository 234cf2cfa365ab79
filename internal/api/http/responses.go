package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type listMeta struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
	Total    int32 `json:"total"`
}

type listBody struct {
	Data any      `json:"data"`
	Meta listMeta `json:"meta"`
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindValidation:          http.StatusBadRequest,
	domain.KindNotFound:            http.StatusNotFound,
	domain.KindVehicleUnavailable:  http.StatusConflict,
	domain.KindExtensionConflict:   http.StatusConflict,
	domain.KindIllegalTransition:   http.StatusConflict,
	domain.KindIllegalRefundChange: http.StatusConflict,
	domain.KindCancellationWindow:  http.StatusConflict,
	domain.KindInvalidCoupon:       http.StatusUnprocessableEntity,
	domain.KindCouponConstraint:    http.StatusUnprocessableEntity,
	domain.KindInsufficientPoints:  http.StatusUnprocessableEntity,
	domain.KindGateway:             http.StatusBadGateway,
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response body", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		logger.ErrorContext(r.Context(), "Unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "INTERNAL_ERROR",
			Message: "internal server error",
		})
		return
	}

	var e *domain.Error
	message := err.Error()
	if errors.As(err, &e) {
		message = e.Message
	}
	writeJSON(w, status, errorBody{Error: string(kind), Message: message})
}
