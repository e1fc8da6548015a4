package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"health-insights/internal/platform/logger"
	"health-insights/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DefaultTokenCookie es la cookie que setea el frontend al hacer login.
const DefaultTokenCookie = "jwt"

// Authenticate:
// - Busca el token primero en la cookie y después en Authorization: Bearer.
// - Sin token => 401 Unauthorized.
// - Token vencido => 401; firma o estructura inválida => 403 (mismo contrato que el frontend ya maneja).
// - Con token válido setea claims en el contexto, solo para este request.
func Authenticate(verifier auth.TokenVerifier, cookieName string, log logger.Logger) func(http.Handler) http.Handler {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = DefaultTokenCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cookieName)
			if token == "" {
				log.Debug("auth: no token in cookie or header", map[string]any{"path": r.URL.Path})
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrTokenExpired):
				log.Debug("auth: token expired", map[string]any{"path": r.URL.Path})
				writeMessage(w, http.StatusUnauthorized, "Token expired")
				return
			case errors.Is(err, auth.ErrInvalidToken):
				log.Debug("auth: invalid token", map[string]any{"path": r.URL.Path, "error": err.Error()})
				writeMessage(w, http.StatusForbidden, "Invalid token: "+invalidDetail(err))
				return
			case errors.Is(err, auth.ErrUnauthorized):
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			default:
				log.Error("auth: verifier failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
				writeMessage(w, http.StatusInternalServerError, "Internal Server Error: "+err.Error())
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole corta con 403 si el rol del caller no está en roles.
// Sin roles, alcanza con estar autenticado. Debe ir después de Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if !RoleAllowed(claims.Role, roles) {
				writeMessage(w, http.StatusForbidden, "Access Denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleAllowed: conjunto vacío => true; si no, el rol tiene que ser miembro exacto.
func RoleAllowed(role string, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
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
	return c, ok
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}
	return bearerToken(r.Header.Get("Authorization"))
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

// invalidDetail saca el prefijo del sentinel para no repetir "invalid token" en el mensaje.
func invalidDetail(err error) string {
	msg := err.Error()
	prefix := auth.ErrInvalidToken.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
