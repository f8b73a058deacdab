package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RatingInput carries a score. GameID is only read when the path has no game id.
type RatingInput struct {
	GameID int    `json:"gameId" example:"1"`
	Rating int    `json:"rating" binding:"required,min=1,max=10" example:"8"`
	Review string `json:"review" example:"Loved the puzzles"`
}

// GetRatings godoc
// @Summary      List a game's ratings
// @Tags         ratings
// @Produce      json
// @Param        gameId path int true "Game ID"
// @Success      200 {array}  catalog.RatingView
// @Router       /ratings/{gameId} [get]
func (h *Handler) GetRatings(c *gin.Context) {
	gameID, ok := idParam(c, "gameId")
	if !ok {
		return
	}
	ratings, err := h.Catalog.ListRatings(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, "list ratings", err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// RateGame godoc
// @Summary      Rate a game
// @Description  Creates or replaces the caller's rating for a game.
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        gameId path int         true "Game ID"
// @Param        input  body RatingInput true "Rating"
// @Success      200 {object} models.Rating
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /ratings/{gameId} [post]
func (h *Handler) RateGame(c *gin.Context) {
	var input RatingInput
	if !bindJSON(c, &input) {
		return
	}

	gameID := input.GameID
	if c.Param("gameId") != "" {
		id, ok := idParam(c, "gameId")
		if !ok {
			return
		}
		gameID = id
	}
	if gameID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId is required"})
		return
	}

	rating, err := h.Catalog.UpsertRating(c.Request.Context(), caller(c), gameID, input.Rating, input.Review)
	if err != nil {
		respondError(c, "rate game", err)
		return
	}
	c.JSON(http.StatusOK, rating)
}
