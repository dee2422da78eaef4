package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddiazp/maintenance-orders-api/middleware"
	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/services"
)

func TestUserAdministrationFlow(t *testing.T) {
	setupTestServices(t)
	router := setupTestRouter()
	router.GET("/users", ListUsers)
	router.POST("/users", CreateUser)
	router.PUT("/users", UpdateUser)
	router.DELETE("/users", DeleteUser)

	// Create two users.
	w, response := performJSON(t, router, http.MethodPost, "/users",
		map[string]interface{}{"username": "maria", "secret": "pw1", "role": "admin"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, response["ok"])

	w, _ = performJSON(t, router, http.MethodPost, "/users",
		map[string]interface{}{"username": "tech1", "secret": "pw2", "role": "technician"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate username is rejected.
	w, response = performJSON(t, router, http.MethodPost, "/users",
		map[string]interface{}{"username": "MARIA", "secret": "pw3", "role": "admin"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", response["code"])

	// List shows both; secrets never serialize.
	w, response = performJSON(t, router, http.MethodGet, "/users", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), response["total"])
	first := response["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "maria", first["username"])
	assert.NotContains(t, first, "secret")

	// Partial update: role only.
	w, response = performJSON(t, router, http.MethodPut, "/users",
		map[string]interface{}{"username": "maria", "role": "superadmin"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, models.RoleSuperadmin, data["role"])

	// Soft-delete blanks the row; the user disappears from the list.
	w, response = performJSON(t, router, http.MethodDelete, "/users?username=maria", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, response["ok"])

	w, response = performJSON(t, router, http.MethodGet, "/users", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), response["total"])
}

func TestUserEndpointValidation(t *testing.T) {
	setupTestServices(t)
	router := setupTestRouter()
	router.POST("/users", CreateUser)
	router.PUT("/users", UpdateUser)
	router.DELETE("/users", DeleteUser)

	tests := []struct {
		name   string
		method string
		path   string
		body   map[string]interface{}
	}{
		{"Create without secret", http.MethodPost, "/users", map[string]interface{}{"username": "x", "role": "admin"}},
		{"Create without role", http.MethodPost, "/users", map[string]interface{}{"username": "x", "secret": "pw"}},
		{"Create with unknown role", http.MethodPost, "/users", map[string]interface{}{"username": "x", "secret": "pw", "role": "boss"}},
		{"Update without username", http.MethodPut, "/users", map[string]interface{}{"secret": "pw"}},
		{"Delete without username", http.MethodDelete, "/users", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := performJSON(t, router, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", response["code"])
		})
	}
}

func TestUpdateUnknownUserIsSuccessShaped(t *testing.T) {
	setupTestServices(t)
	router := setupTestRouter()
	router.PUT("/users", UpdateUser)

	w, response := performJSON(t, router, http.MethodPut, "/users",
		map[string]interface{}{"username": "ghost", "secret": "pw"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, response["ok"])
	assert.Equal(t, "NOT_FOUND", response["code"])
}

func TestUsersSurfaceIsRoleGated(t *testing.T) {
	setupTestServices(t)
	router := setupTestRouter()
	auth := services.GetAuthService()
	group := router.Group("/users")
	group.Use(middleware.ExtractCredential(auth), middleware.RequireRole(models.RoleSuperadmin, models.RoleAdmin))
	group.GET("", ListUsers)

	tech := unsignedToken(t, models.Identity{Username: "tech1", Role: models.RoleTechnician})
	w, response := performJSON(t, router, http.MethodGet, "/users", nil,
		map[string]string{middleware.UserTokenHeader: tech})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", response["code"])

	admin := unsignedToken(t, models.Identity{Username: "maria", Role: models.RoleAdmin})
	w, _ = performJSON(t, router, http.MethodGet, "/users", nil,
		map[string]string{middleware.UserTokenHeader: admin})
	assert.Equal(t, http.StatusOK, w.Code)
}
