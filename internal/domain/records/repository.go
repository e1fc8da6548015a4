package records

import "context"

// Repository es de solo lectura: los registros los crean otros servicios.
// Todas las listas vienen ordenadas por fecha ascendente; sin resultados => slice vacío, no error.
type Repository interface {
	HealthRecordsBySubject(ctx context.Context, subjectID string) ([]HealthRecord, error)
	HealthRecordsByDoctor(ctx context.Context, doctorID string) ([]HealthRecord, error)
	VaccinationsBySubject(ctx context.Context, subjectID string) ([]Vaccination, error)
	AppointmentsByDoctor(ctx context.Context, doctorID string) ([]Appointment, error)
}
