package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ThreadInput struct {
	Title   string `json:"title" binding:"required" example:"Favourite co-op games?"`
	Content string `json:"content" binding:"required"`
}

type MessageInput struct {
	Content string `json:"content" binding:"required" example:"It Takes Two"`
}

type LockInput struct {
	Locked *bool `json:"locked" binding:"required" example:"true"`
}

// endregion

// region --- Threads ---

// GetThreads godoc
// @Summary      List threads
// @Description  Threads ordered by most recent activity.
// @Tags         threads
// @Produce      json
// @Success      200 {array} models.Thread
// @Router       /threads [get]
func (h *Handler) GetThreads(c *gin.Context) {
	threads, err := h.Discussion.ListThreads(c.Request.Context())
	if err != nil {
		respondError(c, "list threads", err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// GetThreadByID godoc
// @Summary      Get a thread
// @Tags         threads
// @Produce      json
// @Param        id path int true "Thread ID"
// @Success      200 {object} models.Thread
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id} [get]
func (h *Handler) GetThreadByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	thread, err := h.Discussion.GetThread(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get thread", err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// CreateThread godoc
// @Summary      Start a thread
// @Tags         threads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ThreadInput true "Thread"
// @Success      201 {object} models.Thread
// @Failure      400 {object} ErrorResponse
// @Router       /threads [post]
func (h *Handler) CreateThread(c *gin.Context) {
	var input ThreadInput
	if !bindJSON(c, &input) {
		return
	}
	thread, err := h.Discussion.CreateThread(c.Request.Context(), caller(c), input.Title, input.Content)
	if err != nil {
		respondError(c, "create thread", err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

// LockThread godoc
// @Summary      Lock or unlock a thread
// @Tags         threads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int       true "Thread ID"
// @Param        input body LockInput true "Lock state"
// @Success      200 {object} models.Thread
// @Failure      403 {object} ErrorResponse "Insufficient permissions"
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id}/lock [put]
func (h *Handler) LockThread(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input LockInput
	if !bindJSON(c, &input) {
		return
	}
	thread, err := h.Discussion.SetLocked(c.Request.Context(), caller(c), id, *input.Locked)
	if err != nil {
		respondError(c, "lock thread", err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// DeleteThread godoc
// @Summary      Delete a thread
// @Description  Deletes a thread and all its messages.
// @Tags         threads
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Thread ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Insufficient permissions"
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id} [delete]
func (h *Handler) DeleteThread(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Discussion.DeleteThread(c.Request.Context(), caller(c), id); err != nil {
		respondError(c, "delete thread", err)
		return
	}
	c.JSON(http.StatusOK, success)
}

// StreamThreadEvents godoc
// @Summary      Follow a thread
// @Description  Server-sent events for messages posted, liked or deleted in the thread.
// @Tags         threads
// @Produce      text/event-stream
// @Param        id path int true "Thread ID"
// @Success      200 {string} string "event stream"
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id}/events [get]
func (h *Handler) StreamThreadEvents(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.Discussion.GetThread(c.Request.Context(), id); err != nil {
		respondError(c, "stream thread", err)
		return
	}

	client := h.Events.Subscribe(id)
	defer h.Events.Unsubscribe(id, client)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case data, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(data))
			return true
		}
	})
}

// endregion

// region --- Messages ---

// GetThreadMessages godoc
// @Summary      List messages of a thread
// @Tags         threads
// @Produce      json
// @Param        id path int true "Thread ID"
// @Success      200 {array}  models.Message
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id}/messages [get]
func (h *Handler) GetThreadMessages(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	messages, err := h.Discussion.ListMessages(c.Request.Context(), id)
	if err != nil {
		respondError(c, "list messages", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// PostThreadMessage godoc
// @Summary      Post a message
// @Tags         threads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Thread ID"
// @Param        input body MessageInput true "Message"
// @Success      201 {object} models.Message
// @Failure      403 {object} ErrorResponse "Thread is locked"
// @Failure      404 {object} ErrorResponse "Thread not found"
// @Router       /threads/{id}/messages [post]
func (h *Handler) PostThreadMessage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input MessageInput
	if !bindJSON(c, &input) {
		return
	}
	msg, err := h.Discussion.PostMessage(c.Request.Context(), caller(c), id, input.Content)
	if err != nil {
		respondError(c, "post message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ToggleMessageLike godoc
// @Summary      Like or unlike a message
// @Tags         threads
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Thread ID"
// @Param        messageId path int true "Message ID"
// @Success      200 {object} models.Message
// @Failure      404 {object} ErrorResponse "Message not found"
// @Router       /threads/{id}/messages/{messageId}/like [put]
func (h *Handler) ToggleMessageLike(c *gin.Context) {
	threadID, ok := idParam(c, "id")
	if !ok {
		return
	}
	messageID, ok := idParam(c, "messageId")
	if !ok {
		return
	}
	msg, err := h.Discussion.ToggleMessageLike(c.Request.Context(), caller(c), threadID, messageID)
	if err != nil {
		respondError(c, "like message", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteThreadMessage godoc
// @Summary      Delete a message
// @Tags         threads
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Thread ID"
// @Param        messageId path int true "Message ID"
// @Success      200 {object} SuccessResponse
// @Failure      403 {object} ErrorResponse "Can only delete your own messages"
// @Failure      404 {object} ErrorResponse "Message not found"
// @Router       /threads/{id}/messages/{messageId} [delete]
func (h *Handler) DeleteThreadMessage(c *gin.Context) {
	threadID, ok := idParam(c, "id")
	if !ok {
		return
	}
	messageID, ok := idParam(c, "messageId")
	if !ok {
		return
	}
	if err := h.Discussion.DeleteMessage(c.Request.Context(), caller(c), threadID, messageID); err != nil {
		respondError(c, "delete message", err)
		return
	}
	c.JSON(http.StatusOK, success)
}

// endregion
