package service

import (
	"regexp"
	"unicode/utf8"

	"quill/internal/model/blog"
)

// Field limits mirrored by the document schema. Limits count characters,
// not bytes, so multibyte text measures the way users read it.
const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 6
	bioMaxLen      = 500

	titleMinLen   = 5
	titleMaxLen   = 150
	contentMinLen = 20
	excerptMaxLen = 300
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateUsername(username string) error {
	if utf8.RuneCountInString(username) < usernameMinLen {
		return ValidationError("Username must be at least 3 characters long")
	}
	if utf8.RuneCountInString(username) > usernameMaxLen {
		return ValidationError("Username cannot exceed 30 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ValidationError("Please provide a valid email address")
	}
	return nil
}

func validatePassword(pwd string) error {
	if utf8.RuneCountInString(pwd) < passwordMinLen {
		return ValidationError("Password must be at least 6 characters long")
	}
	return nil
}

func validateBio(bio string) error {
	if utf8.RuneCountInString(bio) > bioMaxLen {
		return ValidationError("Bio cannot exceed 500 characters")
	}
	return nil
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) < titleMinLen {
		return ValidationError("Title must be at least 5 characters long")
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		return ValidationError("Title cannot exceed 150 characters")
	}
	return nil
}

func validateContent(content string) error {
	if utf8.RuneCountInString(content) < contentMinLen {
		return ValidationError("Content must be at least 20 characters long")
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > excerptMaxLen {
		return ValidationError("Excerpt cannot exceed 300 characters")
	}
	return nil
}

func validateStatus(status string) error {
	if !blog.Status(status).IsValid() {
		return ValidationError("Status must be draft, published or archived")
	}
	return nil
}
