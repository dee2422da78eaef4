package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ddiazp/maintenance-orders-api/services"
	"github.com/ddiazp/maintenance-orders-api/store"
)

// respondServiceError maps service-layer failures onto the response
// contract: validation errors are 400, not-found and version conflicts are
// success-shaped {ok:false}, everything else is a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": validation.Message,
		})
		return
	}

	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusOK, gin.H{
			"ok":      false,
			"code":    "NOT_FOUND",
			"message": notFound.Error(),
		})
		return
	}

	if errors.Is(err, store.ErrVersionConflict) {
		c.JSON(http.StatusOK, gin.H{
			"ok":      false,
			"code":    "CONFLICT",
			"message": "The record was modified by another request; please retry",
		})
		return
	}

	log.Printf("backend error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"ok":      false,
		"code":    "BACKEND_ERROR",
		"message": "Backend unavailable",
	})
}
