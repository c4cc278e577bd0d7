// SPDX-License-Identifier: GPL-3.0-only

package stores

import (
	"errors"
	"quillbox-server/crypto"
	"quillbox-server/models"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Register hashes the password and persists a new account. The unique
// indexes on username and email are the authority for duplicates: a racer
// that loses the insert still comes back as the right sentinel.
func (s *UserStore) Register(username, email, password string) (*models.User, error) {
	if err := s.duplicateOf(username, email, 0); err != nil {
		return nil, err
	}

	hash, err := crypto.NewCrypto().HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  username,
		Email:     email,
		Password:  hash,
		ImageFile: models.DefaultImageFile,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if dupErr := s.duplicateOf(username, email, 0); dupErr != nil {
			return nil, dupErr
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	return s.findOne("id = ?", id)
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	return s.findOne("email = ?", email)
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	return s.findOne("username = ?", username)
}

// UpdateProfile re-validates uniqueness only for values that actually
// changed (case-exact comparison with the current value).
func (s *UserStore) UpdateProfile(user *models.User, username, email string) error {
	checkUsername := username != user.Username
	checkEmail := email != user.Email

	if checkUsername {
		if taken, err := s.exists("username = ? AND id <> ?", username, user.ID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateUsername
		}
	}
	if checkEmail {
		if taken, err := s.exists("email = ? AND id <> ?", email, user.ID); err != nil {
			return err
		} else if taken {
			return ErrDuplicateEmail
		}
	}

	if !checkUsername && !checkEmail {
		return nil
	}

	err := s.db.Model(user).Updates(map[string]any{
		"username": username,
		"email":    email,
	}).Error
	if err != nil {
		if checkUsername {
			if taken, exErr := s.exists("username = ? AND id <> ?", username, user.ID); exErr == nil && taken {
				return ErrDuplicateUsername
			}
		}
		if checkEmail {
			if taken, exErr := s.exists("email = ? AND id <> ?", email, user.ID); exErr == nil && taken {
				return ErrDuplicateEmail
			}
		}
		return err
	}
	return nil
}

func (s *UserStore) SetAvatar(user *models.User, filename string) error {
	return s.db.Model(user).Update("image_file", filename).Error
}

// SetPassword re-hashes and overwrites the stored hash; nothing else.
func (s *UserStore) SetPassword(user *models.User, password string) error {
	hash, err := crypto.NewCrypto().HashPassword(password)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", hash).Error
}

func (s *UserStore) findOne(query string, args ...any) (*models.User, error) {
	var user models.User
	if err := s.db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) exists(query string, args ...any) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserStore) duplicateOf(username, email string, excludeID uint) error {
	if taken, err := s.exists("username = ? AND id <> ?", username, excludeID); err != nil {
		return err
	} else if taken {
		return ErrDuplicateUsername
	}
	if taken, err := s.exists("email = ? AND id <> ?", email, excludeID); err != nil {
		return err
	} else if taken {
		return ErrDuplicateEmail
	}
	return nil
}
