package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/outfitshare/outfit-api/internal/api/metrics"
	"github.com/outfitshare/outfit-api/internal/core/ports"
)

type OutfitHandler struct {
	service ports.OutfitService
}

func NewOutfitHandler(service ports.OutfitService) *OutfitHandler {
	return &OutfitHandler{service: service}
}

// List returns every outfit, newest first, with owner and likers resolved.
//
// @Summary      List outfits
// @Tags         outfits
// @Produce      json
// @Success      200  {array}   outfitResponse
// @Failure      500  {object}  errorResponse
// @Router       /outfits [get]
func (h *OutfitHandler) List(c echo.Context) error {
	errs := routeErrors{internal: "Error fetching outfits"}

	details, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err, errs)
	}

	out := make([]outfitResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toOutfitDetailResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

// ListByUser returns the outfits owned by one user, newest first.
//
// @Summary      List a user's outfits
// @Tags         outfits
// @Produce      json
// @Param        userId  path      string  true  "Owner ID"
// @Success      200     {array}   outfitResponse
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /outfits/user/{userId} [get]
func (h *OutfitHandler) ListByUser(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid user ID", internal: "Error fetching outfits"}

	outfits, err := h.service.ListByOwner(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return respondError(c, err, errs)
	}
	return c.JSON(http.StatusOK, toOutfitResponses(outfits))
}

// Create posts a new outfit.
//
// @Summary      Create outfit
// @Tags         outfits
// @Accept       json
// @Produce      json
// @Param        body  body      createOutfitRequest  true  "Outfit"
// @Success      201   {object}  outfitEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /outfits [post]
func (h *OutfitHandler) Create(c echo.Context) error {
	errs := routeErrors{missing: "All fields are required", invalidID: "Invalid user ID", internal: "Error creating outfit"}

	var req createOutfitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	outfit, err := h.service.Create(c.Request().Context(), ports.CreateOutfitInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		UserID:      req.UserID,
	})
	if err != nil {
		return respondError(c, err, errs)
	}

	metrics.OutfitsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, outfitEnvelope{
		Message: "Outfit created successfully!",
		Outfit:  toOutfitResponse(outfit),
	})
}

// Update replaces name, description and image of an outfit.
//
// @Summary      Update outfit
// @Tags         outfits
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Outfit ID"
// @Param        body  body      updateOutfitRequest  true  "Fields"
// @Success      200   {object}  outfitEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /outfits/{id} [put]
func (h *OutfitHandler) Update(c echo.Context) error {
	errs := routeErrors{missing: "All fields are required", invalidID: "Invalid outfit ID", internal: "Error updating outfit"}

	var req updateOutfitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	outfit, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateOutfitInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return respondError(c, err, errs)
	}

	return c.JSON(http.StatusOK, outfitEnvelope{
		Message: "Outfit updated successfully",
		Outfit:  toOutfitResponse(outfit),
	})
}

// DeleteMany removes several outfits and the comments posted on them.
//
// @Summary      Delete outfits
// @Tags         outfits
// @Accept       json
// @Produce      json
// @Param        body  body      deleteOutfitsRequest  true  "Outfit IDs"
// @Success      200   {object}  deleteOutfitsResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /outfits [delete]
func (h *OutfitHandler) DeleteMany(c echo.Context) error {
	errs := routeErrors{missing: "Invalid outfit IDs provided", internal: "Error deleting outfits"}

	var req deleteOutfitsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	deleted, err := h.service.DeleteMany(c.Request().Context(), req.OutfitIDs)
	if err != nil {
		return respondError(c, err, errs)
	}

	metrics.OutfitsDeletedTotal.Add(float64(deleted))
	return c.JSON(http.StatusOK, deleteOutfitsResponse{
		Message:      fmt.Sprintf("Successfully deleted %d outfits", deleted),
		DeletedCount: deleted,
	})
}

// ToggleLike adds the user's like when absent and removes it when present.
//
// @Summary      Toggle like
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        outfitId  path      string             true  "Outfit ID"
// @Param        body      body      toggleLikeRequest  true  "Liking user"
// @Success      200       {object}  toggleLikeResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /outfits/{outfitId}/like [post]
func (h *OutfitHandler) ToggleLike(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid ID", internal: "Error toggling like"}

	var req toggleLikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err, errs)
	}

	res, err := h.service.ToggleLike(c.Request().Context(), c.Param("outfitId"), req.UserID)
	if err != nil {
		return respondError(c, err, errs)
	}

	msg, action := "Like removed successfully", "removed"
	if res.Liked {
		msg, action = "Like added successfully", "added"
	}
	metrics.LikesToggledTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, toggleLikeResponse{
		Message:   msg,
		Liked:     res.Liked,
		LikeCount: res.LikeCount,
	})
}

// GetLikes reports the like count and whether the optional userId liked it.
//
// @Summary      Get likes
// @Tags         likes
// @Produce      json
// @Param        outfitId  path      string  true   "Outfit ID"
// @Param        userId    query     string  false  "Viewer ID"
// @Success      200       {object}  likesResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /outfits/{outfitId}/likes [get]
func (h *OutfitHandler) GetLikes(c echo.Context) error {
	errs := routeErrors{missing: "Missing required fields", invalidID: "Invalid outfit ID", internal: "Error fetching likes"}

	res, err := h.service.GetLikes(c.Request().Context(), c.Param("outfitId"), c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err, errs)
	}
	return c.JSON(http.StatusOK, likesResponse{LikeCount: res.LikeCount, Liked: res.Liked})
}
