package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/workplan/workplan/pkg/model"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondStoreError maps domain errors to HTTP statuses; anything unknown is
// a 500 with a generic body so internals never leak.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmployeeNotFound),
		errors.Is(err, model.ErrProjectNotFound),
		errors.Is(err, model.ErrAssignmentNotFound),
		errors.Is(err, model.ErrEpicNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidDateRange),
		errors.Is(err, model.ErrInvalidHours):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter, defaulting to
// today when absent.
func parseDateQuery(c *gin.Context, name string) (model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		now := time.Now().UTC()
		return model.Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}, true
	}

	date, err := model.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return model.Date{}, false
	}
	return date, true
}

func requireDateQuery(c *gin.Context, name string) (model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		respondError(c, http.StatusBadRequest, name+" is required")
		return model.Date{}, false
	}

	date, err := model.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return model.Date{}, false
	}
	return date, true
}
