package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type FavoriteInput struct {
	GameID int `json:"gameId" binding:"required" example:"1"`
}

// GetFavorites godoc
// @Summary      List own favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200 {array}  models.Game
// @Failure      403 {object} ErrorResponse "Can only access your own favorites"
// @Router       /favorites/{userId} [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	games, err := h.Catalog.ListFavorites(c.Request.Context(), caller(c), userID)
	if err != nil {
		respondError(c, "list favorites", err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// AddFavorite godoc
// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FavoriteInput true "Game"
// @Success      201 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /favorites [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var input FavoriteInput
	if !bindJSON(c, &input) {
		return
	}
	if err := h.Catalog.AddFavorite(c.Request.Context(), caller(c), input.GameID); err != nil {
		respondError(c, "add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, success)
}

// RemoveFavorite godoc
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Param        gameId path int true "Game ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Can only modify your own favorites"
// @Router       /favorites/{userId}/{gameId} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := idParam(c, "userId")
	if !ok {
		return
	}
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}
	if err := h.Catalog.RemoveFavorite(c.Request.Context(), caller(c), userID, gameID); err != nil {
		respondError(c, "remove favorite", err)
		return
	}
	c.JSON(http.StatusOK, success)
}
