// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// Post is hard-deleted on author request; no soft-delete column.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AuthorID  uint `gorm:"not null;index"`
	Author    User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsAuthoredBy is the single ownership check gating update and delete.
func (p *Post) IsAuthoredBy(userID uint) bool {
	return p.AuthorID == userID
}

func init() {
	AllModels = append(AllModels, &Post{})
}
