package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (rh *RatingHandler) GetProductRatings(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := rh.ratingService.GetProductRatings(c.Request.Context(), productID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "ratings_fetch_failed", err)
		return
	}
	RespondOK(c, result)
}

func (rh *RatingHandler) SubmitRating(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Stars   int            `json:"stars"`
		Comment string         `json:"comment"`
		Images  datatypes.JSON `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	rating, err := rh.ratingService.SubmitRating(c.Request.Context(), productID, req.Stars, req.Comment, req.Images)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "rating_submit_failed", err)
		return
	}
	RespondOK(c, gin.H{"rating": rating})
}

func (rh *RatingHandler) DeleteRating(c *gin.Context) {
	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := rh.ratingService.DeleteRating(c.Request.Context(), ratingID); err != nil {
		RespondError(c, http.StatusBadRequest, "rating_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": ratingID})
}
