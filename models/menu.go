package models

import "time"

// Category is the fixed set of menu sections shown on the kiosk
type Category string

const (
	CategoryStarters   Category = "Starters"
	CategoryMainCourse Category = "Main Course"
	CategoryDrinks     Category = "Drinks"
	CategoryDesserts   Category = "Desserts"
)

var validCategories = map[Category]bool{
	CategoryStarters:   true,
	CategoryMainCourse: true,
	CategoryDrinks:     true,
	CategoryDesserts:   true,
}

// ValidCategory reports whether c is one of the four menu sections
func ValidCategory(c Category) bool {
	return validCategories[c]
}

const (
	DefaultStock    = 100
	DefaultMinStock = 10
	DefaultImageURL = "https://via.placeholder.com/300x200?text=Food+Item"
)

type MenuItem struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Category      Category  `json:"category" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null"`
	ImageURL      string    `json:"imageUrl"`
	IsAvailable   bool      `json:"isAvailable"`
	Description   string    `json:"description"`
	Stock         int       `json:"stock"`
	MinStock      int       `json:"minStock"` // low-stock threshold, signaling only
	IsVeg         bool      `json:"isVeg"`
	IsBestseller  bool      `json:"isBestseller"`
	IsRecommended bool      `json:"isRecommended"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
