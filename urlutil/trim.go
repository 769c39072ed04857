package urlutil

import "strings"

// TrimOverCapture removes a single trailing ")" left behind when a link
// pattern captured past the end of the URL.
//
// URLs are otherwise returned untouched: two strings that differ only in a
// trailing slash, casing or query order are distinct links.
func TrimOverCapture(rawURL string) string {
	return strings.TrimSuffix(rawURL, ")")
}
