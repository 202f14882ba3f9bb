package api

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/battlesnakeio/arena/config"
	"github.com/pkg/errors"
)

// Validation errors returned to clients.
var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidColor = errors.New("invalid color")
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// CleanString trims the text and escapes it for display in a browser.
func CleanString(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ValidPlayerName checks a name is 1 to config.MaxNameLength letters, digits,
// spaces, dashes or underscores.
func ValidPlayerName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > config.MaxNameLength {
		return errors.Wrapf(ErrInvalidName, "names are 1 to %d characters", config.MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			continue
		}
		return errors.Wrapf(ErrInvalidName, "%q is not allowed", r)
	}
	return nil
}

// ValidColor accepts #rgb and #rrggbb colors.
func ValidColor(color string) error {
	if !colorPattern.MatchString(color) {
		return errors.Wrapf(ErrInvalidColor, "%q", color)
	}
	return nil
}
