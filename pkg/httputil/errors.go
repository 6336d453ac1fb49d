package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectfour/internal/domain"
)

type ErrorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind"`
}

// StatusFor maps an error to its HTTP status by kind, never by message.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindIllegalStateTransition, domain.KindConcurrencyConflict:
		return http.StatusConflict
	case domain.KindUnexpectedActor, domain.KindUnknownParticipant:
		return http.StatusForbidden
	case domain.KindBoardCapacity:
		return http.StatusUnprocessableEntity
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteError aborts the request with the mapped status. Unclassified errors
// are not echoed to the client.
func WriteError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Kind: domain.KindOf(err)})
}
