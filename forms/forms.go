// SPDX-License-Identifier: GPL-3.0-only

// Package forms declares the submitted-form shapes and their validation.
// Each form validates explicitly and returns per-field messages; nothing
// is hooked up by reflection or naming convention.
package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Errors maps a field name to its first validation message.
type Errors map[string]string

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) add(field, message string) {
	if _, seen := e[field]; !seen {
		e[field] = message
	}
}

type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *RegisterForm) Validate() Errors {
	errs := Errors{}
	validateUsername(errs, f.Username)
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs.add("password", "Password is required.")
	}
	if f.ConfirmPassword != f.Password {
		errs.add("confirm_password", "Passwords must match.")
	}
	return errs
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember bool   `form:"remember"`
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	validateEmail(errs, f.Email)
	if f.Password == "" {
		errs.add("password", "Password is required.")
	}
	return errs
}

type UpdateAccountForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *UpdateAccountForm) Validate() Errors {
	errs := Errors{}
	validateUsername(errs, f.Username)
	validateEmail(errs, f.Email)
	// Password change is optional on the account form.
	if f.NewPassword != "" && f.ConfirmPassword != f.NewPassword {
		errs.add("confirm_password", "Passwords must match.")
	}
	return errs
}

type PostForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if strings.TrimSpace(f.Title) == "" {
		errs.add("title", "Title is required.")
	}
	if strings.TrimSpace(f.Content) == "" {
		errs.add("content", "Content is required.")
	}
	return errs
}

type RequestResetForm struct {
	Email string `form:"email"`
}

func (f *RequestResetForm) Validate() Errors {
	errs := Errors{}
	validateEmail(errs, f.Email)
	return errs
}

type ResetPasswordForm struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *ResetPasswordForm) Validate() Errors {
	errs := Errors{}
	if f.Password == "" {
		errs.add("password", "Password is required.")
	}
	if f.ConfirmPassword != f.Password {
		errs.add("confirm_password", "Passwords must match.")
	}
	return errs
}

func validateUsername(errs Errors, username string) {
	length := utf8.RuneCountInString(username)
	if length == 0 {
		errs.add("username", "Username is required.")
		return
	}
	if length < 2 || length > 20 {
		errs.add("username", "Username must be between 2 and 20 characters.")
	}
}

func validateEmail(errs Errors, email string) {
	if email == "" {
		errs.add("email", "Email is required.")
		return
	}
	if !emailPattern.MatchString(email) {
		errs.add("email", "Email address is not valid.")
	}
}
