package middleware

import (
	"net/http"
	"time"

	"taskdeck/pkg/requestcontext"
)

// RequestTime pins a single timestamp for the whole request so createdAt and
// updatedAt of one operation never disagree by a clock read.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
