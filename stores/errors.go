// SPDX-License-Identifier: GPL-3.0-only

package stores

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrDuplicateEmail    = errors.New("email is already registered")
	ErrValidation        = errors.New("validation failed")
)
