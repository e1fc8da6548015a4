package insights_test

import (
	"context"
	"errors"
	"testing"

	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/insights"
	"health-insights/internal/platform/logger"
	"health-insights/internal/ports/completion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(gen *stubGenerator) *insights.Service {
	idents, recs := seed()
	return insights.NewService(recs, identities.NewService(idents), gen, logger.Nop())
}

func assertNoIDs(t *testing.T, prompt string) {
	t.Helper()
	for _, id := range []string{patientID, doctorID, staffID, ghostID, otherKidID} {
		assert.NotContains(t, prompt, id)
	}
}

func TestService_AskHistory(t *testing.T) {
	gen := &stubGenerator{text: "Your last diagnosis was a sprained ankle."}
	svc := newService(gen)

	answer, err := svc.AskHistory(context.Background(), patientID, "What was my last diagnosis?")
	require.NoError(t, err)
	assert.Equal(t, "Your last diagnosis was a sprained ankle.", answer)

	p := gen.lastPrompt()
	assert.Contains(t, p, "Asha Kumar")
	assert.Contains(t, p, "Meera Shah")
	assert.Contains(t, p, "Doctor: Unknown")
	assert.Contains(t, p, "Notes: Follow up in one week")
	assertNoIDs(t, p)
}

func TestService_AskHistory_NoRecords(t *testing.T) {
	gen := &stubGenerator{text: "x"}
	svc := newService(gen)

	_, err := svc.AskHistory(context.Background(), staffID, "anything?")
	require.ErrorIs(t, err, insights.ErrNotFound)
	assert.Equal(t, "No medical history found for this patient", err.Error())
	assert.Zero(t, gen.calls())
}

func TestService_AskHistory_MissingQuestionBeforeStore(t *testing.T) {
	gen := &stubGenerator{}
	svc := newService(gen)

	_, err := svc.AskHistory(context.Background(), "nobody", " ")
	assert.ErrorIs(t, err, insights.ErrMissingQuestion)
	assert.Zero(t, gen.calls())
}

func TestService_Fallbacks(t *testing.T) {
	gen := &stubGenerator{text: "   "}
	svc := newService(gen)

	answer, err := svc.AskHistory(context.Background(), patientID, "q?")
	require.NoError(t, err)
	assert.Equal(t, insights.FallbackAnswer, answer)

	answer, err = svc.AskVaccinations(context.Background(), patientID, "q?")
	require.NoError(t, err)
	assert.Equal(t, insights.FallbackVaccinationAnswer, answer)

	prediction, err := svc.PredictDisease(context.Background(), []string{"fever"})
	require.NoError(t, err)
	assert.Equal(t, insights.FallbackPrediction, prediction)
}

func TestService_UpstreamError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := newService(gen)

	_, err := svc.PredictDisease(context.Background(), []string{"fever"})
	require.ErrorIs(t, err, completion.ErrUpstream)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, gen.calls())
}

func TestService_AskVaccinations(t *testing.T) {
	gen := &stubGenerator{text: "One MMR dose."}
	svc := newService(gen)

	answer, err := svc.AskVaccinations(context.Background(), patientID, "Which vaccines?")
	require.NoError(t, err)
	assert.Equal(t, "One MMR dose.", answer)

	p := gen.lastPrompt()
	assert.Contains(t, p, "Recorded by: Nurse Priya")
	assertNoIDs(t, p)

	_, err = svc.AskVaccinations(context.Background(), otherKidID, "Which vaccines?")
	require.ErrorIs(t, err, insights.ErrNotFound)
	assert.Equal(t, "No vaccination history found for this student", err.Error())
}

func TestService_DoctorInsights(t *testing.T) {
	gen := &stubGenerator{text: "You have one free slot."}
	svc := newService(gen)

	answer, err := svc.DoctorInsights(context.Background(), doctorID, "When am I free?")
	require.NoError(t, err)
	assert.Equal(t, "You have one free slot.", answer)

	p := gen.lastPrompt()
	assert.Contains(t, p, "Dr. Meera Shah")
	// solo el turno libre
	assert.Contains(t, p, "Available Appointment Slots:\n- 2024-03-11 09:30 UTC\n\nYour Upcoming Appointments:")
	assert.Contains(t, p, "Patient: Ravi Nair")
	assertNoIDs(t, p)
}

func TestService_DoctorInsights_UnknownDoctor(t *testing.T) {
	gen := &stubGenerator{text: "x"}
	svc := newService(gen)

	_, err := svc.DoctorInsights(context.Background(), ghostID, "q?")
	require.ErrorIs(t, err, insights.ErrNotFound)
	assert.Equal(t, "Doctor not found", err.Error())
	assert.Zero(t, gen.calls())
}
