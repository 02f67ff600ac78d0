package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/api/metrics"
	"github.com/outfitshare/outfit-api/internal/core/domain"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create adds a comment to an outfit.
//
// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentEnvelope
// @Failure      400   {object}  missingCommentFields
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid ID", internal: "Error creating comment"}

	var req createCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, missingCommentFields{
			Message:  errs.missing,
			Error:    invalidDetail(err),
			Received: req,
		})
	}

	detail, err := h.service.Create(c.Request().Context(), ports.CreateCommentInput{
		OutfitID: req.OutfitID,
		UserID:   req.UserID,
		Text:     req.Text,
	})
	if err != nil {
		return respondError(c, err, errs)
	}

	metrics.CommentsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, commentEnvelope{
		Message: "Comment added successfully",
		Comment: toCommentResponse(*detail),
	})
}

// ListByOutfit returns an outfit's comments, newest first.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Param        outfitId  path      string  true  "Outfit ID"
// @Success      200       {array}   commentResponse
// @Failure      400       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /comments/{outfitId} [get]
func (h *CommentHandler) ListByOutfit(c echo.Context) error {
	errs := routeErrors{missing: "Invalid outfit ID", internal: "Error fetching comments"}

	details, err := h.service.ListByOutfit(c.Request().Context(), c.Param("outfitId"))
	if err != nil {
		return respondError(c, err, errs)
	}

	out := make([]commentResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toCommentResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Update replaces a comment's text.
//
// @Summary      Update comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        commentId  path      string                true  "Comment ID"
// @Param        body       body      updateCommentRequest  true  "New text"
// @Success      200        {object}  commentEnvelope
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid comment ID", internal: "Error updating comment"}

	var req updateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("commentId"), req.Text)
	if err != nil {
		return respondError(c, err, errs)
	}

	metrics.CommentsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, commentEnvelope{
		Message: "Comment updated successfully",
		Comment: toCommentResponse(*detail),
	})
}

// Delete removes a comment and its reference on the outfit.
//
// @Summary      Delete comment
// @Tags         comments
// @Produce      json
// @Param        commentId  path      string  true  "Comment ID"
// @Success      200        {object}  messageResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid comment ID", internal: "Error deleting comment"}

	if err := h.service.Delete(c.Request().Context(), c.Param("commentId")); err != nil {
		// An id that cannot exist is reported like one that does not.
		if errors.Is(err, domain.ErrInvalidID) {
			err = domain.ErrCommentNotFound
		}
		return respondError(c, err, errs)
	}

	metrics.CommentsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Comment deleted successfully"})
}
