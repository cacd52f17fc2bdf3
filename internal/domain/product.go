package domain

import "time"

const (
	DefaultCategory = "Uncategorized"
	DefaultImageURL = "https://via.placeholder.com/150/666666/ffffff?text=Product"
)

// Product is a single inventory item.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Category    string    `gorm:"type:text;not null" json:"category"`
	ImageURL    string    `gorm:"column:image_url;type:text;not null" json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
