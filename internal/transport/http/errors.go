package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders-backoffice/internal/domain"
	"github.com/Gunvolt24/orders-backoffice/internal/ports"
)

// errorBody — тело ответа об ошибке.
type errorBody struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// statusFor — HTTP-статус и тело для ошибки прикладного слоя.
func statusFor(err error) (int, errorBody) {
	var (
		ve *domain.ValidationError
		te *domain.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorBody{Error: ve.Error(), Field: ve.Field, Reason: ve.Reason}
	case errors.As(err, &te):
		return http.StatusConflict, errorBody{
			Error: "invalid status transition", From: string(te.From), To: string(te.To), Reason: te.Reason,
		}
	case errors.Is(err, ports.ErrStatusConflict):
		return http.StatusConflict, errorBody{Error: "order status changed concurrently, reload and retry"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, errorBody{Error: "order not found"}
	case errors.Is(err, domain.ErrFetch):
		return http.StatusBadGateway, errorBody{Error: "orders backend unavailable"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorBody{Error: "request timed out"}
	default:
		return http.StatusInternalServerError, errorBody{Error: "internal server error"}
	}
}

// writeError — ответить ошибкой; 5xx логируются как ошибки, остальное как предупреждения.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	code, body := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Errorf(c.Request.Context(), "%s failed status=%d err=%v", op, code, err)
	} else {
		h.log.Warnf(c.Request.Context(), "%s rejected status=%d err=%v", op, code, err)
	}
	c.JSON(code, body)
}

// badRequest — ошибка разбора запроса до вызова сервиса.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: msg})
}
