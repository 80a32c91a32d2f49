package web

import "strings"

// Browser names the browser family of a user agent. Checks run in a fixed
// order, so an Edge agent (which also carries "Chrome") reports Chrome.
func Browser(userAgent string) string {
	for _, name := range []string{"Chrome", "Firefox", "Safari", "Edge"} {
		if strings.Contains(userAgent, name) {
			return name
		}
	}
	return "Unknown"
}
