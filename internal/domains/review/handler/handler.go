package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/domains/review/service"
	"restaurant-review-backend/internal/infrastructure/storage"
	"restaurant-review-backend/internal/shared/middleware"
	"restaurant-review-backend/internal/shared/query"
	"restaurant-review-backend/internal/shared/request"
	"restaurant-review-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
	images        *storage.ImageEncoder
}

func NewReviewHandler(reviewService service.ServiceInterface, images *storage.ImageEncoder) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		images:        images,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// pathIDs parses the restaurant id and, when withReview is set, the review id.
func pathIDs(c *gin.Context, withReview bool) (restaurantID, reviewID uuid.UUID, err error) {
	restaurantID, err = query.ParseID(c.Param("id"), "restaurantId")
	if err != nil || !withReview {
		return restaurantID, uuid.Nil, err
	}
	reviewID, err = query.ParseID(c.Param("reviewId"), "reviewId")
	return restaurantID, reviewID, err
}

// =====================================================
// REVIEW ENDPOINTS
// =====================================================

// ListReviews
// GET /api/v1/restaurants/:id/review?rating=&orderBy=&page=&limit=
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	restaurantID, _, err := pathIDs(c, false)
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, err := query.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	filter := model.ListFilter{
		RestaurantID: restaurantID,
		Rating:       query.OptionalInt(c.Query("rating")),
		OrderBy:      query.ParseOrderBy(c.Query("orderBy"), model.SortFields),
		Page:         page,
	}

	result, err := h.reviewService.ListReviews(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateReview accepts JSON, urlencoded or multipart bodies.
// POST /api/v1/restaurants/:id/review
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	restaurantID, _, err := pathIDs(c, false)
	if err != nil {
		response.FromError(c, err)
		return
	}

	form, err := request.ParseForm(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	images, err := form.Images(h.images)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rating, err := model.ParseRating(form.Get("rating"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	pictures := make([]model.Picture, len(images))
	for i, data := range images {
		pictures[i] = model.Picture{Data: data}
	}

	req := model.CreateReviewRequest{
		Rating:   rating,
		Comment:  form.Get("comment"),
		Pictures: pictures,
	}
	author := service.Author{UserID: identity.UserID, Name: identity.Name}

	review, err := h.reviewService.CreateReview(c.Request.Context(), restaurantID, author, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// UpdateReview is allowed for the author within the edit window.
// PUT /api/v1/restaurants/:id/review/:reviewId
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	restaurantID, reviewID, err := pathIDs(c, true)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidBodyError("Request body is not valid JSON."))
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), identity.UserID, restaurantID, reviewID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, review)
}

// DeleteReview is allowed for the author and for the restaurant owner.
// DELETE /api/v1/restaurants/:id/review/:reviewId
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	restaurantID, reviewID, err := pathIDs(c, true)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), identity.UserID, restaurantID, reviewID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Review deleted successfully."})
}
