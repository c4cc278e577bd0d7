// SPDX-License-Identifier: GPL-3.0-only

package stores

import (
	"errors"
	"fmt"
	"quillbox-server/models"
	"strings"

	"gorm.io/gorm"
)

// Listing order for every post query; id breaks created_at ties.
const postListingOrder = "created_at DESC, id DESC"

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(authorID uint, title, content string) (*models.Post, error) {
	if err := validatePost(title, content); err != nil {
		return nil, err
	}
	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostStore) Get(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update touches title and content only; ownership is the caller's gate.
func (s *PostStore) Update(post *models.Post, title, content string) error {
	if err := validatePost(title, content); err != nil {
		return err
	}
	return s.db.Model(post).Updates(map[string]any{
		"title":   title,
		"content": content,
	}).Error
}

// Delete is permanent; posts carry no soft-delete column.
func (s *PostStore) Delete(post *models.Post) error {
	return s.db.Delete(post).Error
}

func (s *PostStore) ListAll(page int) (models.Page, error) {
	return s.list(page, "", nil)
}

func (s *PostStore) ListByAuthor(authorID uint, page int) (models.Page, error) {
	return s.list(page, "author_id = ?", []any{authorID})
}

func (s *PostStore) list(page int, where string, args []any) (models.Page, error) {
	if page < 1 {
		page = 1
	}
	size := models.DefaultPageSize

	countQuery := s.db.Model(&models.Post{})
	if where != "" {
		countQuery = countQuery.Where(where, args...)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return models.Page{}, err
	}

	findQuery := s.db.Preload("Author").Order(postListingOrder).
		Limit(size).Offset((page - 1) * size)
	if where != "" {
		findQuery = findQuery.Where(where, args...)
	}
	var posts []models.Post
	if err := findQuery.Find(&posts).Error; err != nil {
		return models.Page{}, err
	}

	return models.NewPage(posts, page, size, total), nil
}

func validatePost(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	return nil
}
