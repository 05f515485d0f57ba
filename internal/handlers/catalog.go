// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookhaven/bookmarket-backend/internal/models"
	"github.com/bookhaven/bookmarket-backend/internal/services"
	"github.com/bookhaven/bookmarket-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService      *services.CatalogService
	availabilityService *services.AvailabilityService
	storageService      *services.StorageService
}

func NewCatalogHandler(
	catalogService *services.CatalogService,
	availabilityService *services.AvailabilityService,
	storageService *services.StorageService,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:      catalogService,
		availabilityService: availabilityService,
		storageService:      storageService,
	}
}

// GET /catalog
func (h *CatalogHandler) ListCatalog(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.CatalogSearchParams{
		PaginationParams: params,
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		kind := models.ItemKind(kindStr)
		if !kind.Valid() {
			utils.BadRequestResponse(c, "Invalid item kind", nil)
			return
		}
		searchParams.Kind = &kind
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.AvailabilityStatus(statusStr)
		if !status.Valid() {
			utils.BadRequestResponse(c, "Invalid availability status", nil)
			return
		}
		searchParams.Status = &status
	}

	if bookstoreIDStr := c.Query("bookstore_id"); bookstoreIDStr != "" {
		if bookstoreID, err := strconv.ParseUint(bookstoreIDStr, 10, 64); err == nil {
			id := uint(bookstoreID)
			searchParams.BookstoreID = &id
		}
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	if orderableStr := c.Query("orderable"); orderableStr != "" {
		if orderable, err := strconv.ParseBool(orderableStr); err == nil {
			searchParams.OrderableOnly = orderable
		}
	}

	items, total, err := h.catalogService.ListCatalog(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(items, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /catalog/:ref
func (h *CatalogHandler) GetItem(c *gin.Context) {
	ref, ok := itemRefParam(c)
	if !ok {
		return
	}

	item, err := h.catalogService.GetItem(ref)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// PUT /catalog/:ref/availability
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ref, ok := itemRefParam(c)
	if !ok {
		return
	}

	var req struct {
		Status models.AvailabilityStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.availabilityService.SetAvailability(ref, userID, req.Status)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// POST /books
func (h *CatalogHandler) CreateBook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.catalogService.CreateBook(userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// POST /admin/books
func (h *CatalogHandler) CreateMarketplaceBook(c *gin.Context) {
	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.catalogService.CreateMarketplaceBook(&req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// POST /library-books
func (h *CatalogHandler) CreateLibraryBook(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateLibraryBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	item, err := h.catalogService.CreateLibraryBook(userID, &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

// DELETE /catalog/:ref
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ref, ok := itemRefParam(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteItem(ref, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": ref.String()})
}

// POST /catalog/covers
func (h *CatalogHandler) UploadCover(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided", nil)
		return
	}
	defer file.Close()

	options := h.storageService.GetDefaultUploadOptions("covers")
	result, err := h.storageService.UploadFile(file, header, options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, result)
}
