package middleware

import "net/http"

// securityHeaders is the fixed header set attached to every response,
// success or failure, regardless of route.
var securityHeaders = map[string]string{
	"X-Frame-Options":         "SAMEORIGIN",
	"X-Content-Type-Options":  "nosniff",
	"Content-Security-Policy": "default-src 'self'; object-src 'none'",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for name, value := range securityHeaders {
			w.Header().Set(name, value)
		}
		next.ServeHTTP(w, r)
	})
}
