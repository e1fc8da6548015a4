package insights_test

import (
	"context"
	"sync"
	"time"

	"health-insights/internal/adapters/storage/memory"
	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/records"
)

// Ids con forma de ObjectID para que sea fácil detectarlos en el prompt.
const (
	patientID  = "64b7f0c2a1b2c3d4e5f60001"
	doctorID   = "64b7f0c2a1b2c3d4e5f60002"
	staffID    = "64b7f0c2a1b2c3d4e5f60003"
	ghostID    = "64b7f0c2a1b2c3d4e5f6ffff"
	otherKidID = "64b7f0c2a1b2c3d4e5f60004"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

func (g *stubGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

var t0 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func seed() (memory.IdentityRepo, memory.RecordsRepo) {
	idents := memory.NewIdentityRepo()
	idents.Put(identities.Identity{ID: patientID, Name: "Asha Kumar", Role: "student"})
	idents.Put(identities.Identity{ID: staffID, Name: "Nurse Priya", Role: "staff"})
	idents.Put(identities.Identity{
		ID:   doctorID,
		Name: "Meera Shah",
		Role: "doctor",
		AvailableSlots: []identities.Slot{
			{DateTime: t0.Add(24 * time.Hour), IsBooked: false},
			{DateTime: t0.Add(48 * time.Hour), IsBooked: true},
		},
	})
	idents.Put(identities.Identity{ID: otherKidID, Name: "Ravi Nair", Role: "student"})

	recs := memory.NewRecordsRepo()
	recs.AddHealthRecord(records.HealthRecord{
		SubjectID:    patientID,
		DoctorID:     doctorID,
		RecordedAt:   t0,
		Diagnosis:    "Seasonal flu",
		Treatment:    "Rest and fluids",
		Prescription: "Paracetamol",
		Notes:        "Follow up in one week",
	})
	recs.AddHealthRecord(records.HealthRecord{
		SubjectID:  patientID,
		DoctorID:   ghostID,
		RecordedAt: t0.Add(72 * time.Hour),
		Diagnosis:  "Sprained ankle",
	})
	recs.AddHealthRecord(records.HealthRecord{
		SubjectID:  otherKidID,
		DoctorID:   doctorID,
		RecordedAt: t0.Add(-24 * time.Hour),
		Diagnosis:  "Conjunctivitis",
		Treatment:  "Eye drops",
	})
	recs.AddVaccination(records.Vaccination{
		SubjectID:        patientID,
		RecordedBy:       staffID,
		VaccineName:      "MMR",
		DosageNumber:     1,
		DateAdministered: t0,
		AdministeredBy:   "Dr. External",
		FacilityName:     "City Clinic",
		Status:           records.VaccinationCompleted,
	})
	recs.AddAppointment(records.Appointment{
		SubjectID:    otherKidID,
		DoctorID:     doctorID,
		SlotDateTime: t0.Add(48 * time.Hour),
		Status:       "confirmed",
	})
	return idents, recs
}
