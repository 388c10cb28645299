// Package validate holds the field rules shared by request parsing,
// services, and the import tool.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/image/colornames"

	"github.com/matt-dz/foodgram/internal/domain"
)

const (
	MinCookingTime = 1
	MaxCookingTime = 1440
	MinAmount      = 1
	MaxAmount      = 10000

	// MaxNameLength bounds recipe, tag and ingredient names, tag slugs and
	// measurement units.
	MaxNameLength = 200
)

const (
	SlugTag       = "slug"
	NamedColorTag = "namedcolor"
)

// slugRe accepts letters, digits, underscore and the characters . @ + -.
var slugRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// hexToName maps "#rrggbb" to a CSS color name. Where several names share a
// value the alphabetically first wins.
var hexToName = func() map[string]string {
	names := make([]string, 0, len(colornames.Map))
	for name := range colornames.Map {
		names = append(names, name)
	}
	sort.Strings(names)

	m := make(map[string]string, len(names))
	for _, name := range names {
		c := colornames.Map[name]
		key := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		if _, ok := m[key]; !ok {
			m[key] = name
		}
	}
	return m
}()

func IsSlug(s string) bool {
	return slugRe.MatchString(s)
}

// NormalizeHex lowercases a #rgb or #rrggbb color and expands the short form.
func NormalizeHex(hex string) (string, bool) {
	if !strings.HasPrefix(hex, "#") {
		return "", false
	}
	digits := strings.ToLower(hex[1:])
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", false
		}
	}
	switch len(digits) {
	case 3:
		return "#" + string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		}), true
	case 6:
		return "#" + digits, true
	}
	return "", false
}

// ColorName resolves a hex color to its CSS name.
func ColorName(hex string) (string, bool) {
	normalized, ok := NormalizeHex(hex)
	if !ok {
		return "", false
	}
	name, ok := hexToName[normalized]
	return name, ok
}

func Slug(field, s string) error {
	if !IsSlug(s) {
		return domain.Invalid(field, "may contain only letters, digits and . @ + - _")
	}
	return nil
}

func Color(field, hex string) error {
	if _, ok := ColorName(hex); !ok {
		return domain.Invalidf(field, "%q is not a named color", hex)
	}
	return nil
}

func CookingTime(n int32) error {
	if n < MinCookingTime || n > MaxCookingTime {
		return domain.Invalidf("cooking_time", "must be between %d and %d minutes", MinCookingTime, MaxCookingTime)
	}
	return nil
}

func Amount(n int32) error {
	if n < MinAmount || n > MaxAmount {
		return domain.Invalidf("amount", "must be between %d and %d", MinAmount, MaxAmount)
	}
	return nil
}

func slug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}

func namedColor(fl validator.FieldLevel) bool {
	_, ok := ColorName(fl.Field().String())
	return ok
}

// New returns a validator with the slug and namedcolor tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(SlugTag, slug)
	_ = v.RegisterValidation(NamedColorTag, namedColor)
	return v
}

// FromValidator converts validator errors into a domain validation error
// naming the first failing field.
func FromValidator(err error) error {
	verrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	return domain.Invalidf(e.Field(), "failed %q rule", e.Tag())
}
