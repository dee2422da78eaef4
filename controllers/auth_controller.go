package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ddiazp/maintenance-orders-api/services"
)

// LoginRequest represents the request body for authenticating
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
}

// Login handles POST /api/v1/login - validates credentials and issues a
// bearer token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "username and secret are required",
		})
		return
	}

	auth := services.GetAuthService()
	identity, err := auth.Authenticate(c.Request.Context(), req.Username, req.Secret)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid username or secret",
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	token, err := auth.IssueCredential(identity)
	if err != nil {
		log.Printf("failed to issue credential for %s: %v", identity.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"code":    "TOKEN_ERROR",
			"message": "Failed to issue credential",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"token":    token,
		"role":     identity.Role,
		"username": identity.Username,
	})
}
