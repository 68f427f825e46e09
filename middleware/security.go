package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// SecurityMiddleware sets baseline security headers and logs each request
// with the caller's identity when a JWT is present.
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		claims := GetClaims(r)
		userID, tenantID := "-", "-"
		if claims != nil {
			userID = claims.UserID
			tenantID = claims.TenantID
		}
		log.Printf("[REQ] %s %s user=%s tenant=%s ip=%s t=%s",
			r.Method, r.URL.Path, userID, tenantID, getClientIP(r), time.Now().Format(time.RFC3339))

		next.ServeHTTP(w, r)
	})
}

// Extracts client IP from headers or remote addr
func getClientIP(r *http.Request) string {
	// Priority: X-Forwarded-For → X-Real-IP → RemoteAddr
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.Split(ip, ",")[0]
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
