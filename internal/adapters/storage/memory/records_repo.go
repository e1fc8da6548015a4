package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"health-insights/internal/domain/records"

	"github.com/google/uuid"
)

type recordsRepo struct {
	mu           sync.RWMutex
	health       []records.HealthRecord
	vaccinations []records.Vaccination
	appointments []records.Appointment
}

// RecordsRepo es el store en memoria; los Add* solo se usan para sembrar datos.
type RecordsRepo interface {
	records.Repository
	AddHealthRecord(rec records.HealthRecord) records.HealthRecord
	AddVaccination(v records.Vaccination) records.Vaccination
	AddAppointment(a records.Appointment) records.Appointment
}

func NewRecordsRepo() RecordsRepo {
	return &recordsRepo{}
}

func (r *recordsRepo) AddHealthRecord(rec records.HealthRecord) records.HealthRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = uuid.NewString()
	}
	r.health = append(r.health, rec)
	return rec
}

func (r *recordsRepo) AddVaccination(v records.Vaccination) records.Vaccination {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		v.ID = uuid.NewString()
	}
	r.vaccinations = append(r.vaccinations, v)
	return v
}

func (r *recordsRepo) AddAppointment(a records.Appointment) records.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		a.ID = uuid.NewString()
	}
	r.appointments = append(r.appointments, a)
	return a
}

func (r *recordsRepo) HealthRecordsBySubject(ctx context.Context, subjectID string) ([]records.HealthRecord, error) {
	return r.healthWhere(func(h records.HealthRecord) bool { return h.SubjectID == subjectID }), nil
}

func (r *recordsRepo) HealthRecordsByDoctor(ctx context.Context, doctorID string) ([]records.HealthRecord, error) {
	return r.healthWhere(func(h records.HealthRecord) bool { return h.DoctorID == doctorID }), nil
}

func (r *recordsRepo) healthWhere(match func(records.HealthRecord) bool) []records.HealthRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.HealthRecord, 0)
	for _, h := range r.health {
		if match(h) {
			out = append(out, h)
		}
	}

	// Orden estable por fecha asc
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out
}

func (r *recordsRepo) VaccinationsBySubject(ctx context.Context, subjectID string) ([]records.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Vaccination, 0)
	for _, v := range r.vaccinations {
		if v.SubjectID == subjectID {
			out = append(out, v)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdministered.Before(out[j].DateAdministered)
	})
	return out, nil
}

func (r *recordsRepo) AppointmentsByDoctor(ctx context.Context, doctorID string) ([]records.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Appointment, 0)
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SlotDateTime.Before(out[j].SlotDateTime)
	})
	return out, nil
}
