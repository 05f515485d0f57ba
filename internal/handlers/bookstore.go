// internal/handlers/bookstore.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookhaven/bookmarket-backend/internal/services"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

type BookstoreHandler struct {
	bookstoreService *services.BookstoreService
	reviewService    *services.ReviewService
}

func NewBookstoreHandler(bookstoreService *services.BookstoreService, reviewService *services.ReviewService) *BookstoreHandler {
	return &BookstoreHandler{
		bookstoreService: bookstoreService,
		reviewService:    reviewService,
	}
}

// POST /bookstores
func (h *BookstoreHandler) CreateBookstore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookstoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	store, err := h.bookstoreService.CreateBookstore(userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, store)
}

// GET /bookstores/:id
func (h *BookstoreHandler) GetBookstore(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	store, err := h.bookstoreService.GetBookstore(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, store)
}

// GET /bookstores/mine
func (h *BookstoreHandler) GetMyBookstore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	store, err := h.bookstoreService.GetBookstoreByOwner(userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, store)
}

// PUT /bookstores/mine
func (h *BookstoreHandler) UpdateMyBookstore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateBookstoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	store, err := h.bookstoreService.UpdateBookstore(userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, store)
}

// GET /bookstores/:id/stats
func (h *BookstoreHandler) GetStats(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.reviewService.GetStats(id)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// PUT /bookstores/:id/review
func (h *BookstoreHandler) SubmitReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	review, err := h.reviewService.SubmitReview(id, userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, review)
}

// DELETE /bookstores/:id/review
func (h *BookstoreHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(id, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /bookstores/:id/reviews
func (h *BookstoreHandler) ListReviews(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	offset := (params.Page - 1) * params.Limit

	reviews, total, err := h.reviewService.ListReviews(id, params.Limit, offset)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}
