package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ctxKey string

const principalKey ctxKey = "principal"

// PrincipalFromContext returns the authenticated user, or nil for anonymous
// requests that went through WithAuth.
func PrincipalFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(principalKey).(*User)
	return u, ok
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtSvc *JWT, db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := resolvePrincipal(r, jwtSvc, db)
			if !ok || u == nil {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), principalKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithAuth resolves the principal when a token is supplied but lets anonymous
// requests through. Public memos are readable without authentication, so read
// endpoints use this instead of RequireAuth.
func WithAuth(jwtSvc *JWT, db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := resolvePrincipal(r, jwtSvc, db)
			if !ok {
				// token present but invalid
				unauthorized(w)
				return
			}
			if u != nil {
				r = r.WithContext(context.WithValue(r.Context(), principalKey, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolvePrincipal returns (nil, true) for anonymous requests and (nil, false)
// for requests carrying a token that does not verify or resolve to a user.
func resolvePrincipal(r *http.Request, jwtSvc *JWT, db *gorm.DB) (*User, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return nil, true
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}

	uid, err := jwtSvc.Verify(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return nil, false
	}

	var u User
	if err := db.WithContext(r.Context()).Where("id = ?", uid).First(&u).Error; err != nil {
		return nil, false
	}
	return &u, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
}
