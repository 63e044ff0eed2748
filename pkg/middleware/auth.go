package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aranya-labs/aranya/pkg/auth"
	"github.com/aranya-labs/aranya/pkg/response"
)

type claimsKey struct{}

// tokenFromRequest reads the session token from the auth cookie, falling
// back to an Authorization: Bearer header for API clients.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// Auth rejects requests without a valid session token and stores the claims
// in the request context for UserIDFromCtx / RoleFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth stores claims when a valid token is present but lets
// anonymous requests through. Used on routes like coupon validation where a
// logged-in user unlocks extra checks.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromCtx returns the validated claims, or nil for anonymous requests.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

// UserIDFromCtx returns the authenticated user's ID, or 0 when anonymous.
func UserIDFromCtx(ctx context.Context) uint {
	if claims := ClaimsFromCtx(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

// RoleFromCtx returns the authenticated user's role, or "" when anonymous.
func RoleFromCtx(ctx context.Context) string {
	if claims := ClaimsFromCtx(ctx); claims != nil {
		return claims.Role
	}
	return ""
}
