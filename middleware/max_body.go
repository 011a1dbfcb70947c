package middleware

import (
	"net/http"
	"os"
	"strconv"
)

const defaultMaxBodyBytes = 2 << 20 // 2 MiB

// MaxBodyMiddleware caps request body size. Image uploads are exempted by the
// multipart reader's own limit in the upload handler.
func MaxBodyMiddleware(next http.Handler) http.Handler {
	max := int64(defaultMaxBodyBytes)
	if s := os.Getenv("MAX_BODY_BYTES"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			max = v
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, max)
		}
		next.ServeHTTP(w, r)
	})
}
