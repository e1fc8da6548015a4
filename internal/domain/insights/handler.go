package insights

import (
	"encoding/json"
	"errors"
	"net/http"

	"health-insights/internal/middleware"
	"health-insights/internal/ports/auth"
	"health-insights/internal/ports/completion"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas de consultas. authn es el middleware de token;
// /disease_prediction queda pública.
func RegisterRoutes(r chi.Router, svc *Service, authn func(http.Handler) http.Handler) {
	r.Post("/disease_prediction", diseasePredictionHandler(svc))

	r.Group(func(pr chi.Router) {
		pr.Use(authn)

		// Staff
		pr.With(middleware.RequireRole(auth.RoleStaff)).Post("/ask_question", askQuestionHandler(svc))
		pr.With(middleware.RequireRole(auth.RoleStaff)).Post("/vaccinationrelated", vaccinationHandler(svc))

		// Doctor
		pr.With(middleware.RequireRole(auth.RoleDoctor)).Post("/doctor_insights", doctorInsightsHandler(svc))
	})
}

type questionRequest struct {
	Question string `json:"question"`
}

type symptomsRequest struct {
	Symptoms []string `json:"symptoms"`
}

type answerResponse struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
}

type predictionResponse struct {
	Status     string `json:"status"`
	Prediction string `json:"prediction"`
}

// askQuestionHandler godoc
// @Summary Preguntar sobre la historia clínica
// @Description Responde una pregunta en lenguaje natural sobre la historia clínica del usuario autenticado. Requiere rol staff.
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (si no viene la cookie jwt)"
// @Param body body questionRequest true "Pregunta"
// @Success 200 {object} answerResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /ask_question [post]
func askQuestionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}

		var req questionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		answer, err := svc.AskHistory(r.Context(), claims.SubjectID, req.Question)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answerResponse{Status: "success", Answer: answer})
	}
}

// vaccinationHandler godoc
// @Summary Preguntar sobre vacunas
// @Description Responde una pregunta sobre el historial de vacunación del usuario autenticado. Requiere rol staff.
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (si no viene la cookie jwt)"
// @Param body body questionRequest true "Pregunta"
// @Success 200 {object} answerResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /vaccinationrelated [post]
func vaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}

		var req questionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		answer, err := svc.AskVaccinations(r.Context(), claims.SubjectID, req.Question)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answerResponse{Status: "success", Answer: answer})
	}
}

// doctorInsightsHandler godoc
// @Summary Insights para el doctor
// @Description Responde usando turnos libres, próximos turnos y tratamientos registrados por el doctor autenticado. Requiere rol doctor.
// @Tags insights
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token (si no viene la cookie jwt)"
// @Param body body questionRequest true "Pregunta"
// @Success 200 {object} answerResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string "Doctor not found"
// @Failure 500 {object} map[string]string
// @Router /doctor_insights [post]
func doctorInsightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}

		var req questionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		answer, err := svc.DoctorInsights(r.Context(), claims.SubjectID, req.Question)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, answerResponse{Status: "success", Answer: answer})
	}
}

// diseasePredictionHandler godoc
// @Summary Predicción por síntomas
// @Description Devuelve posibles condiciones para una lista de síntomas. No requiere autenticación.
// @Tags insights
// @Accept json
// @Produce json
// @Param body body symptomsRequest true "Síntomas"
// @Success 200 {object} predictionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /disease_prediction [post]
func diseasePredictionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req symptomsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}

		prediction, err := svc.PredictDisease(r.Context(), req.Symptoms)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, predictionResponse{Status: "success", Prediction: prediction})
	}
}

// maxBodyBytes: preguntas y listas de síntomas son cortas.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingQuestion), errors.Is(err, ErrMissingSymptoms):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, completion.ErrUpstream):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "An error occurred: " + err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
