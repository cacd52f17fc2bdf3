package inventory

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/talkincode/inventory/internal/domain"
)

// sqlite only keeps ids monotonic when the rowid alias is declared
// AUTOINCREMENT, which gorm's sqlite migrator never emits for a primary key.
const sqliteProductsDDL = "CREATE TABLE IF NOT EXISTS `products` (" +
	"`id` integer PRIMARY KEY AUTOINCREMENT," +
	"`name` text NOT NULL," +
	"`description` text NOT NULL," +
	"`price` real NOT NULL," +
	"`quantity` integer NOT NULL," +
	"`category` text NOT NULL," +
	"`image_url` text NOT NULL," +
	"`created_at` datetime)"

// Migrate creates or upgrades the inventory tables.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" && !db.Migrator().HasTable(&domain.Product{}) {
		if err := db.Exec(sqliteProductsDDL).Error; err != nil {
			return errors.Wrap(err, "create products table")
		}
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "migrate database")
	}
	return nil
}
