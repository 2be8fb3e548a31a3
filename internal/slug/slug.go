// Package slug validates and generates URL-safe store identifiers.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrTooShort is returned for slugs under three characters.
	ErrTooShort = errors.New("slug too short")

	// ErrInvalidFormat is returned for slugs that are not lowercase
	// hyphen-separated alphanumerics.
	ErrInvalidFormat = errors.New("slug contains invalid characters")

	// ErrTaken is returned when another store already claims the slug.
	ErrTaken = errors.New("slug already taken")
)

// pattern: lowercase letters/digits in hyphen-separated runs; no leading,
// trailing, or double hyphens.
var pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// AvailabilityFunc asks the persistence gateway whether a slug is free.
type AvailabilityFunc func(ctx context.Context, slug string) (bool, error)

// Validate checks a proposed slug against the three rules in order,
// short-circuiting on the first failure: minimum length, character
// pattern, then uniqueness via the gateway.
func Validate(ctx context.Context, s string, available AvailabilityFunc) error {
	if len(s) < 3 {
		return ErrTooShort
	}
	if !pattern.MatchString(s) {
		return ErrInvalidFormat
	}
	free, err := available(ctx, s)
	if err != nil {
		return fmt.Errorf("check slug availability: %w", err)
	}
	if !free {
		return ErrTaken
	}
	return nil
}

// Generate derives a candidate slug from a display name: lowercase, strip
// everything outside [a-z0-9 -], whitespace to hyphens, collapse repeats,
// trim. The result is a suggestion only; it still goes through Validate
// before acceptance.
func Generate(name string) string {
	s := strings.ToLower(name)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	s = strings.Join(fields, "-")

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
