package domain

import "time"

type Category string

const (
	CategorySeafood    Category = "seafood"
	CategoryAppetizers Category = "appetizers"
	CategorySoups      Category = "soups"
	CategoryDrinks     Category = "drinks"
)

// DefaultCategories seeds the category registry on first migration.
var DefaultCategories = []Category{CategorySeafood, CategoryAppetizers, CategorySoups, CategoryDrinks}

type MenuItem struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       int64     `json:"price" gorm:"not null"`
	Category    Category  `json:"category" gorm:"size:64;not null;index"`
	Image       string    `json:"image" gorm:"size:1024"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CategoryEntry is a row of the category registry.
type CategoryEntry struct {
	Name      Category  `json:"name" gorm:"primaryKey;size:64"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CategoryEntry) TableName() string {
	return "categories"
}

// Tables is the migration set.
var Tables = []interface{}{
	&CategoryEntry{},
	&MenuItem{},
	&Order{},
	&OrderItem{},
}
