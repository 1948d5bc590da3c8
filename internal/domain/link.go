package domain

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UntitledLink is used when no title can be derived from a URL.
const UntitledLink = "Untitled Link"

// ValidateURL checks that raw is non-empty and parses as an absolute URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return ErrEmptyURL
	}
	u, err := parseURL(raw)
	if err != nil || u.Scheme == "" {
		return ErrInvalidURL
	}
	// "https:" alone or "https://" have neither host nor opaque part
	if u.Host == "" && u.Opaque == "" {
		return ErrInvalidURL
	}
	return nil
}

// ExtractTitleFromURL derives a display title from the hostname.
// Example: "http://www.Example.com/x" -> "Example.com"
func ExtractTitleFromURL(raw string) string {
	u, err := parseURL(raw)
	if err != nil {
		return UntitledLink
	}

	hostname := strings.ToLower(u.Hostname())
	hostname = strings.TrimPrefix(hostname, "www.")
	if hostname == "" {
		return UntitledLink
	}

	r, size := utf8.DecodeRuneInString(hostname)
	return string(unicode.ToUpper(r)) + hostname[size:]
}

// parseURL reads "http:host/path" the way browsers do, as "http://host/path".
func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" && u.Opaque != "" {
		return url.Parse(u.Scheme + "://" + u.Opaque)
	}
	return u, nil
}
