package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/services"
)

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Secret   string `json:"secret" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest represents the request body for a partial user update
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Secret   string `json:"secret"`
	Role     string `json:"role"`
}

// ListUsers handles GET /api/v1/users - lists all live users
func ListUsers(c *gin.Context) {
	users, err := services.GetUserService().List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"total": len(users),
		"data":  users,
	})
}

// CreateUser handles POST /api/v1/users - creates a new user
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "username, secret and role are required",
		})
		return
	}

	err := services.GetUserService().Create(c.Request.Context(), models.User{
		Username: req.Username,
		Secret:   req.Secret,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "User created",
	})
}

// UpdateUser handles PUT /api/v1/users - partially updates a user's secret
// and/or role, located by username
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "username is required",
		})
		return
	}

	user, err := services.GetUserService().Update(c.Request.Context(), req.Username, req.Secret, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "User updated",
		"data":    user,
	})
}

// DeleteUser handles DELETE /api/v1/users?username= - soft-deletes a user
// by blanking the row
func DeleteUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "username is required",
		})
		return
	}

	if err := services.GetUserService().Delete(c.Request.Context(), username); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "User deleted",
	})
}
