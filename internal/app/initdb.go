package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/inventory/internal/domain"
)

func sampleProduct(name, description string, price float64, qty int, category, color, label string) domain.Product {
	return domain.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    qty,
		Category:    category,
		ImageURL:    "https://via.placeholder.com/150/" + color + "/ffffff?text=" + label,
	}
}

var defaultProducts = []domain.Product{
	sampleProduct(`Laptop Pro 15"`, "High-performance laptop with 16GB RAM and 512GB SSD", 1299.99, 15, "Electronics", "0066cc", "Laptop"),
	sampleProduct("Wireless Mouse", "Ergonomic wireless mouse with precision tracking", 29.99, 50, "Electronics", "4CAF50", "Mouse"),
	sampleProduct("USB-C Hub", "7-in-1 USB-C hub with HDMI and card reader", 49.99, 30, "Electronics", "FF9800", "Hub"),
	sampleProduct("Mechanical Keyboard", "RGB backlit mechanical gaming keyboard", 89.99, 25, "Electronics", "9C27B0", "Keyboard"),
	sampleProduct(`4K Monitor 27"`, "Ultra HD 4K monitor with HDR support", 399.99, 12, "Electronics", "2196F3", "Monitor"),
	sampleProduct("Webcam HD", "1080p webcam with built-in microphone", 69.99, 20, "Electronics", "F44336", "Webcam"),
	sampleProduct("Office Chair", "Ergonomic office chair with lumbar support", 249.99, 10, "Furniture", "795548", "Chair"),
	sampleProduct("Standing Desk", "Adjustable height standing desk", 499.99, 8, "Furniture", "607D8B", "Desk"),
	sampleProduct("Desk Lamp LED", "Adjustable LED desk lamp with touch control", 39.99, 35, "Furniture", "FFEB3B", "Lamp"),
	sampleProduct("Bookshelf", "5-tier wooden bookshelf", 129.99, 15, "Furniture", "8BC34A", "Shelf"),
	sampleProduct("Notebook Set", "Premium lined notebook set (3 pack)", 19.99, 60, "Stationery", "00BCD4", "Notebook"),
	sampleProduct("Pen Collection", "Professional ballpoint pen set", 24.99, 45, "Stationery", "3F51B5", "Pens"),
	sampleProduct("Sticky Notes", "Colorful sticky notes variety pack", 9.99, 100, "Stationery", "FFC107", "Notes"),
	sampleProduct("Desk Organizer", "Bamboo desk organizer with compartments", 34.99, 28, "Stationery", "009688", "Organizer"),
	sampleProduct("Headphones Pro", "Noise-cancelling wireless headphones", 199.99, 18, "Electronics", "E91E63", "Headphones"),
	sampleProduct("Phone Stand", "Adjustable aluminum phone stand", 19.99, 40, "Electronics", "9E9E9E", "Stand"),
	sampleProduct("Water Bottle", "Insulated stainless steel water bottle", 24.99, 55, "Accessories", "03A9F4", "Bottle"),
	sampleProduct("Backpack", "Laptop backpack with USB charging port", 59.99, 22, "Accessories", "673AB7", "Backpack"),
	sampleProduct("Desk Mat", "Large mouse pad desk mat", 29.99, 33, "Accessories", "FF5722", "Mat"),
	sampleProduct("Cable Organizer", "Cable management clips and sleeves", 14.99, 75, "Accessories", "4CAF50", "Cables"),
}

// checkProducts seeds the sample catalog when the products table is empty
func (a *Application) checkProducts(ctx context.Context) {
	count, err := a.store.Count(ctx)
	if err != nil {
		zap.L().Error("failed to count products", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	rows := make([]domain.Product, len(defaultProducts))
	now := time.Now().UTC()
	for i, p := range defaultProducts {
		p.CreatedAt = now
		rows[i] = p
	}
	if err := a.gormDB.WithContext(ctx).Create(&rows).Error; err != nil {
		zap.L().Error("failed to create default products", zap.Error(err))
		return
	}
	zap.L().Info("initialized default products", zap.Int("count", len(rows)))
}
