package middleware

import "net/http"

// MaxRequestSize caps request bodies. Oversized payloads fail inside the
// handler's decode with http.MaxBytesError rather than up front, which keeps
// streaming reads cheap.
func MaxRequestSize(maxBytes int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))
			}
			next.ServeHTTP(w, r)
		})
	}
}
