package app

import (
	"gorm.io/gorm"

	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/inventory"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the product store
type StoreProvider interface {
	Store() inventory.ProductStore
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	StoreProvider

	MigrateDB(track bool) error
	InitDb() error
}
