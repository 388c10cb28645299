// Package password checks the strength of user passwords.
package password

import (
	"errors"
	"strings"
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/matt-dz/foodgram/internal/validate"
)

const (
	minimumLength       = 8
	maximumLength       = 150
	minimumEntropyBits  = 50
	minimumAttributeLen = 3
)

var (
	ErrTooShort       = errors.New("password must be at least 8 characters long")
	ErrTooLong        = errors.New("password must be at most 150 characters long")
	ErrInvalidCharset = errors.New("password may only contain letters, digits and @.+-_")
	ErrTooSimilar     = errors.New("password is too similar to the account details")
	ErrTooWeak        = errors.New("password is too weak")
)

// ValidatePassword rejects passwords that are out of bounds, use characters
// outside the username charset, contain one of attributes (username, email
// local part, names) or have too little entropy.
func ValidatePassword(password string, attributes ...string) error {
	n := utf8.RuneCountInString(password)
	if n < minimumLength {
		return ErrTooShort
	}
	if n > maximumLength {
		return ErrTooLong
	}
	if !validate.IsSlug(password) {
		return ErrInvalidCharset
	}

	lower := strings.ToLower(password)
	for _, attr := range attributes {
		attr, _, _ = strings.Cut(strings.ToLower(attr), "@")
		if len(attr) >= minimumAttributeLen && strings.Contains(lower, attr) {
			return ErrTooSimilar
		}
	}

	if err := passwordvalidator.Validate(password, minimumEntropyBits); err != nil {
		return errors.Join(ErrTooWeak, err)
	}

	return nil
}
