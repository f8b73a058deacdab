package handler

import (
	"net/http"

	"gamehub/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type RequestInput struct {
	SteamID  string `json:"steamId" example:"620"`
	GameName string `json:"gameName" binding:"required" example:"Portal 2"`
	Notes    string `json:"notes"`
}

type RequestStatusInput struct {
	Status models.RequestStatus `json:"status" binding:"required" example:"approved"`
}

// GetRequests godoc
// @Summary      List game requests
// @Description  Admins see every request, other users only their own. Newest first.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  models.Request
// @Failure      401 {object} ErrorResponse
// @Router       /requests [get]
func (h *Handler) GetRequests(c *gin.Context) {
	list, err := h.Requests.List(c.Request.Context(), caller(c))
	if err != nil {
		respondError(c, "list requests", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateRequest godoc
// @Summary      Request a game
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RequestInput true "Request"
// @Success      201 {object} models.Request
// @Failure      400 {object} ErrorResponse
// @Router       /requests [post]
func (h *Handler) CreateRequest(c *gin.Context) {
	var input RequestInput
	if !bindJSON(c, &input) {
		return
	}
	req, err := h.Requests.Submit(c.Request.Context(), caller(c), input.SteamID, input.GameName, input.Notes)
	if err != nil {
		respondError(c, "submit request", err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// UpdateRequestStatus godoc
// @Summary      Approve or reject a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                true "Request ID"
// @Param        input body RequestStatusInput true "New status"
// @Success      200 {object} models.Request
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Insufficient permissions"
// @Failure      404 {object} ErrorResponse "Request not found"
// @Failure      409 {object} ErrorResponse "Request already decided"
// @Router       /requests/{id} [put]
func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input RequestStatusInput
	if !bindJSON(c, &input) {
		return
	}
	req, err := h.Requests.SetStatus(c.Request.Context(), caller(c), id, input.Status)
	if err != nil {
		respondError(c, "update request", err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeleteRequest godoc
// @Summary      Delete a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Request ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Insufficient permissions"
// @Failure      404 {object} ErrorResponse "Request not found"
// @Router       /requests/{id} [delete]
func (h *Handler) DeleteRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Requests.Delete(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, "delete request", err)
		return
	}
	c.JSON(http.StatusOK, success)
}
