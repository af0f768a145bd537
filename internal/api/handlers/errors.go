package handlers

import (
	"errors"
	"net/http"

	"auction-core/internal/domain"

	"github.com/labstack/echo/v4"
)

// MapErrorToHTTP maps service errors to a status code and client message.
func MapErrorToHTTP(err error) (int, string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, domain.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, domain.ErrAuctionNotClosed):
		return http.StatusConflict, "auction is not yet closed"
	case errors.Is(err, domain.ErrNoBids):
		return http.StatusNotFound, "auction closed without bids"
	case domain.IsTransient(err):
		return http.StatusServiceUnavailable, "temporarily unavailable, retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// MapRejectionToHTTP maps a bid rejection reason to a status code.
func MapRejectionToHTTP(reason domain.RejectReason) int {
	switch reason {
	case domain.RejectInvalidBid:
		return http.StatusBadRequest
	case domain.RejectAuctionNotFound:
		return http.StatusNotFound
	case domain.RejectBidTooLow:
		return http.StatusConflict
	case domain.RejectAuctionEnded:
		return http.StatusGone
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *AuctionHandler) fail(c echo.Context, op string, err error) error {
	status, message := MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(op+" failed", "path", c.Path(), "error", err)
	}
	return c.JSON(status, Response{Success: false, Message: message})
}
