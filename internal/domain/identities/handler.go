package identities

import (
	"encoding/json"
	"net/http"

	"health-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth-test. El router ya aplicó Authenticate + RequireRole() sobre r.
func RegisterRoutes(r chi.Router) {
	r.Get("/auth-test", authTestHandler())
}

// authTestResponse es la identidad resuelta desde el token.
type authTestResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

// authTestHandler godoc
// @Summary Probar autenticación
// @Description Devuelve la identidad resuelta desde el token (cookie `jwt` o `Authorization: Bearer <token>`). No exige rol. Solo para diagnóstico.
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token (si no viene la cookie jwt)"
// @Success 200 {object} authTestResponse
// @Failure 401 {object} map[string]string "Unauthorized / Token expired"
// @Failure 403 {object} map[string]string "Invalid token"
// @Router /auth-test [get]
func authTestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, authTestResponse{
			Message: "Authentication successful!",
			UserID:  claims.SubjectID,
			Role:    claims.Role,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
