// Package handler exposes the services over the REST API.
package handler

import (
	"log"
	"net/http"
	"strconv"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/discussion"
	"gamehub/backend/internal/hub"
	"gamehub/backend/internal/requests"
	"gamehub/backend/internal/stats"
	"gamehub/backend/internal/upload"
	"gamehub/backend/internal/users"

	"github.com/gin-gonic/gin"
)

// Handler holds the services the HTTP handlers delegate to.
type Handler struct {
	Sessions   *auth.Sessions
	Users      *users.Service
	Catalog    *catalog.Service
	Requests   *requests.Service
	Discussion *discussion.Service
	Stats      *stats.Service
	Images     *upload.Images
	Events     *hub.Hub

	// AuthLimiter throttles the register and login endpoints. Nil disables it.
	AuthLimiter *IPRateLimiter
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// SuccessResponse is returned by endpoints that have nothing else to report.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

var success = SuccessResponse{Success: true}

// respondError writes err as {"error": msg} with the status of its kind.
// Internal errors are logged with op and never expose their cause.
func respondError(c *gin.Context, op string, err error) {
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("%s: %v", op, err)
	}
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// idParam parses a positive integer path parameter, answering 400 when it is not one.
func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// caller returns the identity set by the auth middleware. On public routes it
// is the zero Identity.
func caller(c *gin.Context) auth.Identity {
	id, _ := auth.CurrentIdentity(c)
	return id
}
