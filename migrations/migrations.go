// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"quillbox-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Listing order is always created_at DESC with id DESC as the
			// tie-break; back it with a composite index.
			ID: "001_posts_listing_index",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_posts_listing ON posts (created_at DESC, id DESC)").Error; err != nil {
					return fmt.Errorf("failed to create posts listing index: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_posts_listing").Error
			},
		},
		{
			ID: "002_backfill_default_avatar",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.User{}).
					Where("image_file IS NULL OR image_file = ''").
					Update("image_file", models.DefaultImageFile).Error; err != nil {
					return fmt.Errorf("failed to backfill avatar filenames: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
