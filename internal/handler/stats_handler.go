package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats godoc
// @Summary      Site statistics
// @Tags         stats
// @Produce      json
// @Success      200 {object} stats.Counts
// @Router       /stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	counts, err := h.Stats.Counts(c.Request.Context())
	if err != nil {
		respondError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
