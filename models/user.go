// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

var AllModels []any

// DefaultImageFile is the avatar every account starts with.
const DefaultImageFile = "default.jpg"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:20;not null;uniqueIndex"`
	Email     string `gorm:"not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	ImageFile string `gorm:"not null;default:default.jpg"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	Posts     []Post `gorm:"foreignKey:AuthorID"`
}

func init() {
	AllModels = append(AllModels, &User{})
}
