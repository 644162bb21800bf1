package http

import (
	"net/http"
	"strconv"

	"campus-market/internal/entity"
	"campus-market/internal/repo/persistent"
	"campus-market/internal/usecase"
	"campus-market/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	itemUseCase usecase.ItemUseCase
	logger      *logger.Logger
}

func NewItemHandler(itemUseCase usecase.ItemUseCase, logger *logger.Logger) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
		logger:      logger,
	}
}

type CreateItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Category    string `json:"category"`
	Campus      string `json:"campus"`
	ClubID      string `json:"club_id"`
}

// CreateItem godoc
// @Summary      Create listing
// @Description  List an item for sale (price in cents)
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateItemRequest true "Item data"
// @Success      201  {object}  entity.Item
// @Router       /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.itemUseCase.CreateItem(&entity.Item{
		SellerID:    userID,
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Campus:      req.Campus,
	})
	if err != nil {
		if err.Error() == "not a member of this club" || err.Error() == "price must be positive" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetItem godoc
// @Summary      Get listing
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object}  entity.Item
// @Router       /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.itemUseCase.GetItem(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListItems godoc
// @Summary      Browse listings
// @Tags         items
// @Produce      json
// @Param        campus query string false "Campus filter"
// @Param        category query string false "Category filter"
// @Param        club_id query string false "Club filter"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	limit, offset := paginationParams(c)

	filter := persistent.ItemFilter{
		Campus:   c.Query("campus"),
		Category: c.Query("category"),
		ClubID:   c.Query("club_id"),
		Status:   string(entity.ItemStatusActive),
	}

	items, err := h.itemUseCase.ListItems(filter, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
}

// UpdateItem godoc
// @Summary      Update listing
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Param        request body UpdateItemRequest true "Item fields"
// @Success      200  {object}  entity.Item
// @Router       /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.itemUseCase.UpdateItem(userID, &entity.Item{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		if err.Error() == "not the seller of this item" || err.Error() == "item already sold" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to update item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem godoc
// @Summary      Remove listing
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Success      200  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ItemHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.itemUseCase.RemoveItem(userID, c.Param("id")); err != nil {
		if err.Error() == "not the seller of this item" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to remove item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// UploadImage godoc
// @Summary      Upload item image
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Param        image formData file true "Image file"
// @Success      200  {object}  map[string]string
// @Router       /items/{id}/image [post]
func (h *ItemHandler) UploadImage(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	url, err := h.itemUseCase.UploadImage(userID, c.Param("id"), file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if err.Error() == "not the seller of this item" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func paginationParams(c *gin.Context) (int, int) {
	limit := 50
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
