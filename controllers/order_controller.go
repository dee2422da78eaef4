package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ddiazp/maintenance-orders-api/middleware"
	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/services"
	"github.com/ddiazp/maintenance-orders-api/utils"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Code        string `json:"code" binding:"required"`
	TenantName  string `json:"tenantName" binding:"required"`
	Phone       string `json:"phone"`
	Technician  string `json:"technician"`
	Description string `json:"description"`
}

// AssignTechRequest represents the request body for assigning a technician
type AssignTechRequest struct {
	Code       string `json:"code" binding:"required"`
	Technician string `json:"technician" binding:"required"`
}

// ListOrders handles GET /api/v1/orders - lists orders visible to the
// caller. The identity comes from the presented credential, or explicitly
// from role/user query parameters.
func ListOrders(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		identity = models.Identity{
			Username: c.Query("user"),
			Role:     c.Query("role"),
		}
	}
	if identity.Role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"ok":      false,
			"code":    "UNAUTHORIZED",
			"message": "Missing credential or role/user parameters",
		})
		return
	}

	orders, err := services.GetOrderService().ListOrders(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"total": len(orders),
		"data":  orders,
	})
}

// CreateOrder handles POST /api/v1/orders - appends a new pending order
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "code and tenantName are required",
		})
		return
	}

	err := services.GetOrderService().CreateOrder(c.Request.Context(), services.CreateOrderInput{
		Code:        req.Code,
		TenantName:  req.TenantName,
		Phone:       req.Phone,
		Technician:  req.Technician,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "Order created",
	})
}

// AssignTech handles PUT /api/v1/orders/assign - assigns a technician and
// moves the order to InProgress
func AssignTech(c *gin.Context) {
	var req AssignTechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "code and technician are required",
		})
		return
	}

	if err := services.GetOrderService().AssignTech(c.Request.Context(), req.Code, req.Technician); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Technician assigned",
	})
}

// CloseOrder handles PUT /api/v1/orders/close - finalizes an order with a
// captured signature and produces the PDF report. Multipart form fields:
// code, mode (technician/review/final, default final), signature (PNG).
func CloseOrder(c *gin.Context) {
	code := c.PostForm("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"code":    "VALIDATION_ERROR",
			"message": "code is required",
		})
		return
	}

	modeParam := c.PostForm("mode")
	if modeParam == "" {
		modeParam = string(services.ModeFinal)
	}
	mode, err := services.ParseReportMode(modeParam)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sig := models.Signature{OrderCode: code, CapturedAt: time.Now()}
	if fileHeader, err := c.FormFile("signature"); err == nil {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			})
			return
		}
		image, err := utils.ReadUploadedFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"code":    "VALIDATION_ERROR",
				"message": "Could not read signature file",
			})
			return
		}
		sig.Image = image
	}

	order, location, err := services.GetOrderService().CloseOrder(c.Request.Context(), code, sig, mode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Order finalized",
		"report":  location,
		"data":    order,
	})
}

// GetSummary handles GET /api/v1/orders/summary - order counts by status
func GetSummary(c *gin.Context) {
	summary, err := services.GetOrderService().Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"summary": summary,
	})
}
