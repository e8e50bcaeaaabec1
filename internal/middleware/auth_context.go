package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// CookieName es la cookie donde viaja el token de sesión.
const CookieName = "auth_token"

// AuthContext:
//   - Si viene token (Bearer o cookie auth_token) y verifier != nil => Verify() y setea claims.
//   - Si devHeaders => acepta X-Debug-User-ID + X-Debug-User-Role sin token.
//   - Si no hay claims el request sigue igual; los handlers deciden 401/403.
func AuthContext(verifier auth.AuthVerifier, devHeaders bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if devHeaders {
				if claims, ok := debugClaims(r); ok {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}

			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				if c, err := r.Cookie(CookieName); err == nil {
					token = strings.TrimSpace(c.Value)
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí. El handler decide 401.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	if !ok || c.UserID <= 0 {
		return auth.Claims{}, false
	}
	return c, true
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
	if raw == "" {
		return auth.Claims{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return auth.Claims{}, false
	}
	role := access.Role(strings.ToUpper(strings.TrimSpace(r.Header.Get("X-Debug-User-Role"))))
	if !role.Valid() {
		return auth.Claims{}, false
	}
	return auth.Claims{
		UserID: id,
		Role:   role,
		Email:  strings.TrimSpace(r.Header.Get("X-Debug-User-Email")),
	}, true
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
