package response

import "net/http"

// RequestIDFromRequest reads the id the request-id middleware echoed onto the
// response; falls back to the inbound header.
func RequestIDFromRequest(r *http.Request) string {
	if v := r.Header.Get("X-Request-Id"); v != "" {
		return v
	}
	return r.Header.Get("X-Request-ID")
}
