package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-review-backend/internal/domains/restaurant/model"
	"restaurant-review-backend/internal/domains/restaurant/service"
	reviewmodel "restaurant-review-backend/internal/domains/review/model"
	"restaurant-review-backend/internal/infrastructure/storage"
	"restaurant-review-backend/internal/shared/middleware"
	"restaurant-review-backend/internal/shared/query"
	"restaurant-review-backend/internal/shared/request"
	"restaurant-review-backend/internal/shared/response"
)

// =====================================================
// RESTAURANT HANDLER
// =====================================================

type RestaurantHandler struct {
	service service.ServiceInterface
	images  *storage.ImageEncoder
}

func NewRestaurantHandler(service service.ServiceInterface, images *storage.ImageEncoder) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		images:  images,
	}
}

// ListRestaurants
// GET /api/v1/restaurants?name=&category=&averageRating=&hasPicture=&orderBy=&page=&limit=
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	page, err := query.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	filter := model.ListFilter{
		Name:          c.Query("name"),
		Category:      c.Query("category"),
		AverageRating: query.OptionalFloat(c.Query("averageRating")),
		HasPicture:    query.TriState(c.Query("hasPicture")),
		OrderBy:       query.ParseOrderBy(c.Query("orderBy"), model.SortFields),
		Page:          page,
	}

	result, err := h.service.ListRestaurants(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetRestaurant returns the restaurant with one page of its reviews.
// GET /api/v1/restaurants/:id?rating=&orderBy=&page=&limit=
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	page, err := query.ParsePage(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	id, err := query.ParseID(c.Param("id"), "restaurantId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	q := model.DetailQuery{
		Rating:  query.OptionalInt(c.Query("rating")),
		OrderBy: query.ParseOrderBy(c.Query("orderBy"), reviewmodel.SortFields),
		Page:    page,
	}

	detail, err := h.service.GetRestaurant(c.Request.Context(), id, q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// CreateRestaurant accepts JSON, urlencoded or multipart bodies. Pictures are
// either a comma separated "images" value or uploaded "images" files.
// POST /api/v1/restaurants
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
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

	req := model.CreateRestaurantRequest{
		Name:     form.Get("name"),
		Category: form.Get("category"),
		Pictures: toPictures(images),
	}

	restaurant, err := h.service.CreateRestaurant(c.Request.Context(), identity.UserID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, restaurant)
}

// UpdateRestaurant
// PUT /api/v1/restaurants/:id
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	id, err := query.ParseID(c.Param("id"), "restaurantId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, model.NewInvalidBodyError("Request body is not valid JSON."))
		return
	}

	restaurant, err := h.service.UpdateRestaurant(c.Request.Context(), identity.UserID, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, restaurant)
}

// DeleteRestaurant also removes the restaurant's reviews.
// DELETE /api/v1/restaurants/:id
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	identity, err := middleware.CurrentUser(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	id, err := query.ParseID(c.Param("id"), "restaurantId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.DeleteRestaurant(c.Request.Context(), identity.UserID, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Restaurant deleted successfully."})
}

func toPictures(images []string) []model.Picture {
	pictures := make([]model.Picture, len(images))
	for i, data := range images {
		pictures[i] = model.Picture{Data: data}
	}
	return pictures
}
