package handlers

import (
	"net/http"

	"kiosk-ordering-api/config"
	"kiosk-ordering-api/models"
	"kiosk-ordering-api/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateMenuItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Category      models.Category `json:"category" binding:"required"`
	Price         *float64        `json:"price" binding:"required"`
	ImageURL      string          `json:"imageUrl"`
	IsAvailable   *bool           `json:"isAvailable"`
	Description   string          `json:"description"`
	Stock         *int            `json:"stock"`
	MinStock      *int            `json:"minStock"`
	IsVeg         *bool           `json:"isVeg"`
	IsBestseller  bool            `json:"isBestseller"`
	IsRecommended bool            `json:"isRecommended"`
}

// UpdateMenuItemRequest supports partial updates; only non-nil fields are applied
type UpdateMenuItemRequest struct {
	Name          *string          `json:"name"`
	Category      *models.Category `json:"category"`
	Price         *float64         `json:"price"`
	ImageURL      *string          `json:"imageUrl"`
	IsAvailable   *bool            `json:"isAvailable"`
	Description   *string          `json:"description"`
	Stock         *int             `json:"stock"`
	MinStock      *int             `json:"minStock"`
	IsVeg         *bool            `json:"isVeg"`
	IsBestseller  *bool            `json:"isBestseller"`
	IsRecommended *bool            `json:"isRecommended"`
}

// ListMenu returns available items, optionally filtered by category.
// Unavailable items are hidden from customer-facing listings.
func ListMenu(c *gin.Context) {
	query := config.DB.Where("is_available = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItem returns a single item by id, available or not, so admin and
// order-repopulation flows can always resolve it.
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem adds a catalog item (admin only)
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be: Starters, Main Course, Drinks, or Desserts"})
		return
	}
	if *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must be non-negative"})
		return
	}
	if req.MinStock != nil && *req.MinStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Minimum stock must be non-negative"})
		return
	}

	item := models.MenuItem{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Category:      req.Category,
		Price:         *req.Price,
		ImageURL:      models.DefaultImageURL,
		IsAvailable:   true,
		Description:   req.Description,
		Stock:         models.DefaultStock,
		MinStock:      models.DefaultMinStock,
		IsVeg:         true,
		IsBestseller:  req.IsBestseller,
		IsRecommended: req.IsRecommended,
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem applies a partial update (admin only). Stock-affecting
// changes are pushed to the admin room so dashboards refresh without polling.
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category != nil && !models.ValidCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category. Must be: Starters, Main Course, Drinks, or Desserts"})
		return
	}
	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be non-negative"})
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must be non-negative"})
		return
	}
	if req.MinStock != nil && *req.MinStock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Minimum stock must be non-negative"})
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	stockChanged := req.Stock != nil || req.MinStock != nil
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.IsBestseller != nil {
		item.IsBestseller = *req.IsBestseller
	}
	if req.IsRecommended != nil {
		item.IsRecommended = *req.IsRecommended
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	if stockChanged {
		notify(realtime.EventInventoryUpdated, gin.H{
			"itemId":   item.ID,
			"name":     item.Name,
			"stock":    item.Stock,
			"minStock": item.MinStock,
		}, realtime.RoomAdmin)
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a catalog item (admin only). Past orders keep
// their denormalized name/price snapshots, so deletion never corrupts them.
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
