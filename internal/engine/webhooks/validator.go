package webhooks

import (
	"errors"
	"net/url"
	"strings"
)

// ValidateURL accepts absolute http and https URLs. The scheme comparison is
// case-insensitive.
func ValidateURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("target url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid target url format")
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.New("target url must start with http:// or https://")
	}
	if u.Host == "" {
		return nil, errors.New("target url has no host")
	}

	u.Scheme = scheme
	return u, nil
}
