package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/records"
	"health-insights/internal/platform/logger"
	"health-insights/internal/platform/metrics"
	"health-insights/internal/ports/completion"
)

// Textos fijos cuando el generador responde sin texto.
const (
	FallbackAnswer            = "I couldn't generate an answer."
	FallbackVaccinationAnswer = "Gemini AI could not generate an answer."
	FallbackPrediction        = "Gemini AI could not generate a prediction."
)

const (
	unknownPatient = "Unknown Patient"
	unknownDoctor  = "Unknown Doctor"
)

type Service struct {
	enricher *Enricher
	idents   *identities.Service
	gen      completion.Generator
	log      logger.Logger
}

func NewService(recs records.Repository, idents *identities.Service, gen completion.Generator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		enricher: NewEnricher(recs, idents),
		idents:   idents,
		gen:      gen,
		log:      log,
	}
}

// AskHistory responde una pregunta sobre la historia clínica del paciente autenticado.
// Sin registros => ErrNotFound.
func (s *Service) AskHistory(ctx context.Context, subjectID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrMissingQuestion
	}

	name, err := s.idents.NameOf(ctx, subjectID, unknownPatient)
	if err != nil {
		return "", err
	}

	entries, err := s.enricher.History(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errNoHistory
	}

	prompt, err := ComposeHistory(name, entries, question)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, "ask_question", prompt, FallbackAnswer)
}

// AskVaccinations responde sobre las vacunas del paciente autenticado.
func (s *Service) AskVaccinations(ctx context.Context, subjectID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrMissingQuestion
	}

	entries, err := s.enricher.Vaccinations(ctx, subjectID)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", errNoVaccinations
	}

	name, err := s.idents.NameOf(ctx, subjectID, unknownPatient)
	if err != nil {
		return "", err
	}

	prompt, err := ComposeVaccinations(name, entries, question)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, "vaccination", prompt, FallbackVaccinationAnswer)
}

// DoctorInsights junta turnos libres, próximos turnos y tratamientos pasados del doctor.
// Que no tenga registros no es error; que el doctor no exista sí (ErrNotFound).
func (s *Service) DoctorInsights(ctx context.Context, doctorID, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrMissingQuestion
	}

	doctor, err := s.idents.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, identities.ErrNotFound) {
			return "", errNoDoctor
		}
		return "", fmt.Errorf("get doctor: %w", err)
	}

	name := strings.TrimSpace(doctor.Name)
	if name == "" {
		name = unknownDoctor
	}

	free := identities.FreeSlots(doctor)
	slots := make([]string, 0, len(free))
	for _, sl := range free {
		slots = append(slots, formatTime(sl.DateTime))
	}

	appts, err := s.enricher.DoctorAppointments(ctx, doctorID)
	if err != nil {
		return "", err
	}
	treatments, err := s.enricher.DoctorTreatments(ctx, doctorID)
	if err != nil {
		return "", err
	}

	prompt, err := ComposeDoctorInsights(DoctorContext{
		Name:         name,
		FreeSlots:    slots,
		Appointments: appts,
		Treatments:   treatments,
	}, question)
	if err != nil {
		return "", err
	}

	s.log.Debug("doctor insights prompt composed", map[string]any{
		"appointments": len(appts),
		"treatments":   len(treatments),
		"free_slots":   len(slots),
	})
	return s.complete(ctx, "doctor_insights", prompt, FallbackAnswer)
}

// PredictDisease no necesita identidad ni store.
func (s *Service) PredictDisease(ctx context.Context, symptoms []string) (string, error) {
	prompt, err := ComposeDiseasePrediction(symptoms)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, "disease_prediction", prompt, FallbackPrediction)
}

// complete hace exactamente una llamada al generador.
func (s *Service) complete(ctx context.Context, op, prompt, fallback string) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	took := time.Since(start)

	if err != nil {
		metrics.ObserveCompletion(op, "error", took)
		s.log.Error("completion failed", map[string]any{"operation": op, "error": err.Error()})
		if !errors.Is(err, completion.ErrUpstream) {
			err = fmt.Errorf("%w: %v", completion.ErrUpstream, err)
		}
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		metrics.ObserveCompletion(op, "empty", took)
		s.log.Warn("completion returned no text", map[string]any{"operation": op})
		return fallback, nil
	}

	metrics.ObserveCompletion(op, "success", took)
	return text, nil
}
