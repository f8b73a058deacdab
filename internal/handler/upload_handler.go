package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for form boundaries and headers on top of the file size cap.
const multipartOverhead = 64 << 10

type UploadResponse struct {
	URL string `json:"url" example:"/uploads/0b9c7f1e-2d3a-4c55-9a8e-1f2e3d4c5b6a.png"`
}

// UploadAvatar godoc
// @Summary      Upload an avatar image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Image file"
// @Success      200 {object} UploadResponse
// @Failure      400 {object} ErrorResponse "Only image files are allowed"
// @Router       /upload/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	h.saveImage(c, "avatar")
}

// UploadBanner godoc
// @Summary      Upload a banner image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        banner formData file true "Image file"
// @Success      200 {object} UploadResponse
// @Failure      400 {object} ErrorResponse "Only image files are allowed"
// @Router       /upload/banner [post]
func (h *Handler) UploadBanner(c *gin.Context) {
	h.saveImage(c, "banner")
}

func (h *Handler) saveImage(c *gin.Context, field string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Images.MaxBytes()+multipartOverhead)

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer f.Close()

	url, err := h.Images.Save(f)
	if err != nil {
		respondError(c, "upload "+field, err)
		return
	}
	c.JSON(http.StatusOK, UploadResponse{URL: url})
}
