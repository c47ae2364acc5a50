package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	imagepkg "github.com/youruser/markx-images/internal/image"
	"github.com/youruser/markx-images/internal/storage"
)

// Composer is the composition service as seen by the HTTP layer.
type Composer interface {
	LabelSingle(ctx context.Context, name, imageURL, text string) (string, error)
	MergeMany(ctx context.Context, name string, imageURLs []string) (string, error)
}

type Handler struct {
	Composer Composer
	Logger   *slog.Logger
}

type mergeRequest struct {
	ImgName   string   `json:"imgName" binding:"required"`
	ImageURLs []string `json:"imageUrls" binding:"required"`
}

type addTextRequest struct {
	ImgName string  `json:"imgName" binding:"required"`
	ImgURL  string  `json:"imgUrl" binding:"required"`
	Txt     *string `json:"txt" binding:"required"`
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// mergeImages labels and tiles the posted images and answers with the URL
// of the grid.
func (h *Handler) mergeImages(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := h.Composer.MergeMany(c.Request.Context(), req.ImgName, req.ImageURLs)
	if err != nil {
		h.fail(c, "merge failed", err)
		return
	}
	c.JSON(http.StatusOK, url)
}

// addText captions one image and answers with its URL.
func (h *Handler) addText(c *gin.Context) {
	var req addTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := h.Composer.LabelSingle(c.Request.Context(), req.ImgName, req.ImgURL, *req.Txt)
	if err != nil {
		h.fail(c, "add text failed", err)
		return
	}
	c.JSON(http.StatusOK, url)
}

// qr endpoint returns a PNG of a QR for "text" query param, usually the URL
// of a merged image
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	size := imagepkg.DefaultQRSize
	if sizeStr := c.Query("size"); sizeStr != "" {
		v, err := strconv.Atoi(sizeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
			return
		}
		size = v
	}
	b, err := imagepkg.ShareQR(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error(msg, "status", status, "error", err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		layoutErr *imagepkg.LayoutError
		fetchErr  *imagepkg.FetchError
		storeErr  *storage.StoreError
	)
	switch {
	case errors.As(err, &layoutErr):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &storeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
