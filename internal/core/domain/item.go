package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryBooks       Category = "Books"
	CategoryMusic       Category = "Music"
	CategoryMovies      Category = "Movies"
	CategoryGames       Category = "Games"
	CategoryElectronics Category = "Electronics"
	CategoryComputers   Category = "Computers"
	CategoryOffice      Category = "Office"
)

var categories = []Category{
	CategoryBooks,
	CategoryMusic,
	CategoryMovies,
	CategoryGames,
	CategoryElectronics,
	CategoryComputers,
	CategoryOffice,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// CatalogueItem is a single catalogue record. ID is assigned by the store;
// SKU is the unique business key and is immutable after creation.
type CatalogueItem struct {
	ID          int64      `json:"id"`
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Price       float64    `json:"price"`
	Inventory   int        `json:"inventory"`
	CreatedOn   time.Time  `json:"createdOn"`
	UpdatedOn   *time.Time `json:"updatedOn,omitempty"`
}
