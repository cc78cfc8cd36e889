package auth

import (
	"net/http"
	"strings"

	"github.com/user/scribe-go/apperror"
	"github.com/user/scribe-go/config"
)

// Gate returns the authentication middleware. It consults RequiresAuth
// first, so unprotected requests pass through with no token parsing and no
// possible failure from a missing header. Protected requests must carry a
// valid bearer token; on success the decoded claims are attached to the
// request context for downstream handlers.
//
// A missing header and an invalid token carry distinguishable internal
// messages but produce the same 401 status, so the client cannot tell which
// failure occurred.
func Gate(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	secret := []byte(cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !RequiresAuth(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, r, apperror.NewAuthenticationError("missing credential", nil))
				return
			}

			claims, err := ParseToken(token, secret)
			if err != nil {
				WriteError(w, r, apperror.NewAuthenticationError("invalid or expired credential", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from a "Bearer <token>" authorization
// header. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
