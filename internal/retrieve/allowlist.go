package retrieve

import (
	"net/url"
	"strings"
)

// Allowlist restricts evidence retrieval to the configured trusted hosts.
// Matching is by host substring, so "bbc.com" admits "www.bbc.com".
type Allowlist struct {
	hosts []string
}

// NewAllowlist builds an allowlist from trusted-site host substrings
func NewAllowlist(hosts []string) *Allowlist {
	normalized := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			normalized = append(normalized, h)
		}
	}
	return &Allowlist{hosts: normalized}
}

// Allows reports whether the URL's host matches a trusted entry
func (a *Allowlist) Allows(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	for _, trusted := range a.hosts {
		if strings.Contains(host, trusted) {
			return true
		}
	}
	return false
}

// Filter keeps only allowed URLs, preserving order
func (a *Allowlist) Filter(urls []string) []string {
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if a.Allows(u) {
			kept = append(kept, u)
		}
	}
	return kept
}
