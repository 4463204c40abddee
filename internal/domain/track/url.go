package track

import "net/url"

// ExtractDomain returns the hostname component of rawURL. On any parse
// failure, or when the parsed URL has no hostname, the input is returned
// unchanged: tab tracking must never fail because of an unparsable URL.
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := parsed.Hostname()
	if host == "" {
		return rawURL
	}
	return host
}
