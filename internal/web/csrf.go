package web

import (
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"

	"github.com/civicspark/civic-site/internal/logging"
)

// Protect wraps the site with form token checks on unsafe methods. Without
// secure cookies the site is assumed to be served over plain HTTP.
func Protect(next http.Handler, key []byte, secure bool, trustedOrigins []string) http.Handler {
	protect := csrf.Protect(
		key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(originHosts(trustedOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)(next)

	if secure {
		return protect
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protect.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	logging.FromContext(r.Context()).Warn().
		Err(csrf.FailureReason(r)).
		Str("path", r.URL.Path).
		Msg("form token rejected")
	http.Error(w, "The form has expired. Please go back, reload the page and try again.", http.StatusForbidden)
}

// originHosts reduces origins such as "http://localhost:8080" to the host
// form the token check compares against.
func originHosts(origins []string) []string {
	hosts := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, o)
	}
	return hosts
}
