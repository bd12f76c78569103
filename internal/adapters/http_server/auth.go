package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// Identity is the authenticated caller extracted from the bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   string // "" or "admin"
}

func (id Identity) Admin() bool { return id.Role == "admin" }

type identityKey struct{}

// IdentityFrom returns the caller identity, if the request carried a valid token.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity is exported for handler tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

type authClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Auth parses an HS256 bearer token when present and stores the identity in
// the request context. Missing or invalid tokens leave the request anonymous;
// RequireAuth decides whether that is fatal.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" || secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			var claims authClaims
			parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid || claims.Subject == "" {
				next.ServeHTTP(w, r)
				return
			}
			id := Identity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			writeDomainErr(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose identity lacks the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			writeDomainErr(w, domain.ErrUnauthorized)
			return
		}
		if !id.Admin() {
			writeDomainErr(w, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
