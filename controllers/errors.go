package controllers

import (
	"errors"
	"log"
	"net/http"

	"SmashSessions/services/sessions"

	"github.com/gin-gonic/gin"
)

// abortWithDomainError is the single place where domain errors become an
// HTTP status plus the message shown to the invoking member. Anything that
// is not a known domain error is an unrecovered fault of this one request.
func abortWithDomainError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, sessions.ErrInvalidIndex),
		errors.Is(err, sessions.ErrInvalidDate),
		errors.Is(err, sessions.ErrInvalidCapacity):
		status = http.StatusBadRequest
	case errors.Is(err, sessions.ErrNoSessionAvailable),
		errors.Is(err, sessions.ErrIndexOutOfRange),
		errors.Is(err, sessions.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sessions.ErrUserIsNotHost):
		status = http.StatusForbidden
	case errors.Is(err, sessions.ErrUserIsAlreadyHost),
		errors.Is(err, sessions.ErrUserIsAlreadyParticipant),
		errors.Is(err, sessions.ErrSessionIsFull),
		errors.Is(err, sessions.ErrUserIsHost),
		errors.Is(err, sessions.ErrUserIsNotParticipant),
		errors.Is(err, sessions.ErrTooManyEquipment):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, sessions.ErrConcurrentModification):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Printf("unhandled error: %v", err)
		c.JSON(status, gin.H{"error": "something went wrong, try again later"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
