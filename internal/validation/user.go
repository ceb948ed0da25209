// Package validation holds the input rules shared by services and seed data.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
	// bcrypt ignores input past 72 bytes.
	PasswordMaxBytes = 72
	BioMaxLength     = 500
	AvatarMaxLength  = 2048
)

var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._-]*[\p{L}\p{N}]$`)

// ValidateUsername checks length and allowed characters. Display names such
// as "Sarah Johnson" are valid handles.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLength || n > UsernameMaxLength {
		return fmt.Errorf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain letters, numbers, spaces, dots, dashes and underscores, and must start and end with a letter or number")
	}
	if strings.Contains(username, "  ") {
		return fmt.Errorf("username cannot contain consecutive spaces")
	}
	return nil
}

// ValidatePassword enforces the minimum length and the bcrypt input limit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	if len(password) > PasswordMaxBytes {
		return fmt.Errorf("password must be at most %d bytes", PasswordMaxBytes)
	}
	return nil
}

// ValidateBio bounds the profile biography.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > BioMaxLength {
		return fmt.Errorf("bio must be at most %d characters", BioMaxLength)
	}
	return nil
}

// ValidateAvatarURL accepts an empty value, an absolute http(s) URL or a site-relative path.
func ValidateAvatarURL(avatar string) error {
	if avatar == "" {
		return nil
	}
	if len(avatar) > AvatarMaxLength {
		return fmt.Errorf("avatar URL is too long")
	}
	if strings.HasPrefix(avatar, "https://") || strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "/") {
		return nil
	}
	return fmt.Errorf("avatar must be an http(s) URL or a relative path")
}
