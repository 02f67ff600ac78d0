package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/api/metrics"
	"github.com/outfitshare/outfit-api/internal/core/ports"
	"github.com/outfitshare/outfit-api/pkg/logger"
)

// ImageHandler proxies stock-photo searches so the access key stays on the
// server.
type ImageHandler struct {
	searcher ports.ImageSearcher
}

func NewImageHandler(searcher ports.ImageSearcher) *ImageHandler {
	return &ImageHandler{searcher: searcher}
}

// Search returns the provider's photo list unchanged.
//
// @Summary      Search Unsplash photos
// @Tags         images
// @Produce      json
// @Param        query  query     string  false  "Search terms"
// @Success      200    {array}   object
// @Failure      500    {object}  errorResponse
// @Router       /api/unsplash [get]
func (h *ImageHandler) Search(c echo.Context) error {
	start := time.Now()
	body, err := h.searcher.Search(c.Request().Context(), c.QueryParam("query"))
	metrics.ImageSearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ImageSearchesTotal.WithLabelValues("error").Inc()
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("image search failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to fetch images from Unsplash"})
	}

	metrics.ImageSearchesTotal.WithLabelValues("ok").Inc()
	return c.JSONBlob(http.StatusOK, body)
}
