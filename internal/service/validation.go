package service

import (
	"net/url"
	"strings"

	"github.com/samber/lo"

	"feedpoll/internal/locale"
)

// ValidateURL checks a submitted feed URL against the form rules, in order:
// present, a well-formed http(s) URL, not one of the subscribed URLs.
func ValidateURL(raw string, subscribed []string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return &SubmitError{Key: locale.KeyRequired, Err: ErrInvalid}
	}
	if !isValidURL(value) {
		return &SubmitError{Key: locale.KeyURL, Err: ErrInvalid}
	}
	if lo.Contains(subscribed, value) {
		return &SubmitError{Key: locale.KeyURLNotOneOf, Err: ErrConflict}
	}
	return nil
}

func isValidURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
