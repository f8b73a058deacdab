package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentInput struct {
	GameID int    `json:"gameId" binding:"required" example:"1"`
	Text   string `json:"text" binding:"required" example:"Great game!"`
}

// GetComments godoc
// @Summary      List comments
// @Description  Lists comments newest first, optionally for a single game.
// @Tags         comments
// @Produce      json
// @Param        gameId query int false "Game ID"
// @Success      200 {array}  models.Comment
// @Failure      400 {object} ErrorResponse
// @Router       /comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	gameID := 0
	if raw := c.Query("gameId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gameId"})
			return
		}
		gameID = id
	}

	comments, err := h.Catalog.ListComments(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, "list comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateComment godoc
// @Summary      Comment on a game
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommentInput true "Comment"
// @Success      201 {object} models.Comment
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var input CommentInput
	if !bindJSON(c, &input) {
		return
	}

	comment, err := h.Catalog.AddComment(c.Request.Context(), caller(c), input.GameID, input.Text)
	if err != nil {
		respondError(c, "add comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ToggleCommentLike godoc
// @Summary      Like or unlike a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} models.Comment
// @Failure      404 {object} ErrorResponse "Comment not found"
// @Router       /comments/{id}/like [put]
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	comment, err := h.Catalog.ToggleCommentLike(c.Request.Context(), caller(c), id)
	if err != nil {
		respondError(c, "like comment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Authors may delete their own comments, admins any comment.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Can only delete your own comments"
// @Failure      404 {object} ErrorResponse "Comment not found"
// @Router       /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteComment(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, "delete comment", err)
		return
	}
	c.JSON(http.StatusOK, success)
}
