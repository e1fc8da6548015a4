package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtadapter "health-insights/internal/adapters/auth/jwt"
	"health-insights/internal/middleware"
	"health-insights/internal/platform/logger"
	"health-insights/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

// echoHandler devuelve las claims que quedaron en el contexto.
func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": c.SubjectID, "role": c.Role})
	})
}

func newChain(t *testing.T, roles ...string) http.Handler {
	t.Helper()
	v, err := jwtadapter.NewVerifier(secret)
	require.NoError(t, err)

	h := middleware.RequireRole(roles...)(echoHandler())
	return middleware.Authenticate(v, "", logger.Nop())(h)
}

func sign(t *testing.T, key, subject, role string, exp time.Time) string {
	t.Helper()
	tok, err := jwtadapter.Sign(key, subject, role, exp)
	require.NoError(t, err)
	return tok
}

func serve(h http.Handler, req *http.Request) (int, map[string]string) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	out := map[string]string{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestAuthenticate_NoToken_401(t *testing.T) {
	st, body := serve(newChain(t), httptest.NewRequest(http.MethodGet, "/auth-test", nil))
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, secret, "S1", auth.RoleStaff, time.Now().Add(time.Hour)))

	st, body := serve(newChain(t), req)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "S1", body["id"])
	assert.Equal(t, auth.RoleStaff, body["role"])
}

func TestAuthenticate_CookieTakesPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: sign(t, secret, "from-cookie", auth.RoleDoctor, time.Now().Add(time.Hour))})
	req.Header.Set("Authorization", "Bearer "+sign(t, secret, "from-header", auth.RoleStaff, time.Now().Add(time.Hour)))

	st, body := serve(newChain(t), req)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, "from-cookie", body["id"])
}

func TestAuthenticate_NonBearerScheme_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")

	st, _ := serve(newChain(t), req)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestAuthenticate_Expired_401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, secret, "S1", auth.RoleStaff, time.Now().Add(-time.Minute)))

	st, body := serve(newChain(t), req)
	assert.Equal(t, http.StatusUnauthorized, st)
	assert.Equal(t, "Token expired", body["message"])
}

func TestAuthenticate_BadSignature_403(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, "another-secret", "S1", auth.RoleStaff, time.Now().Add(time.Hour)))

	st, body := serve(newChain(t), req)
	assert.Equal(t, http.StatusForbidden, st)
	assert.Contains(t, body["message"], "Invalid token")
}

func TestRequireRole_Membership(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		role  string
		want  int
	}{
		{"empty set passes any role", nil, "anything", http.StatusOK},
		{"empty set passes blank role", nil, "", http.StatusOK},
		{"member passes", []string{auth.RoleStaff}, auth.RoleStaff, http.StatusOK},
		{"member of many passes", []string{auth.RoleStaff, auth.RoleDoctor}, auth.RoleDoctor, http.StatusOK},
		{"non member denied", []string{auth.RoleDoctor}, auth.RoleStaff, http.StatusForbidden},
		{"case sensitive", []string{auth.RoleDoctor}, "Doctor", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+sign(t, secret, "S1", tc.role, time.Now().Add(time.Hour)))

			st, body := serve(newChain(t, tc.roles...), req)
			assert.Equal(t, tc.want, st)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "Access Denied", body["message"])
			}
			assert.Equal(t, tc.want == http.StatusOK, middleware.RoleAllowed(tc.role, tc.roles))
		})
	}
}

func TestRequireRole_WithoutClaims_401(t *testing.T) {
	h := middleware.RequireRole(auth.RoleStaff)(echoHandler())
	st, _ := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestRecover_ReturnsJSON500(t *testing.T) {
	h := middleware.Recover(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	st, body := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, st)
	assert.Equal(t, "internal error", body["error"])
}
