package records

import "time"

// HealthRecord es una entrada de historia clínica.
// SubjectID es el paciente; DoctorID el profesional que la cargó.
type HealthRecord struct {
	ID        string
	SubjectID string
	DoctorID  string

	// RecordedAt: createdAt, o la primera fecha presente entre date/dateTime/timestamp.
	RecordedAt time.Time

	Diagnosis    string
	Treatment    string
	Prescription string
	Notes        string
}

// Vaccination es una dosis aplicada (o pendiente) a un paciente.
type Vaccination struct {
	ID        string
	SubjectID string

	// RecordedBy es el id del staff que la registró.
	RecordedBy string

	VaccineName      string
	DosageNumber     int
	DateAdministered time.Time
	NextDueDate      *time.Time

	// AdministeredBy y FacilityName ya son texto libre (no ids).
	AdministeredBy string
	FacilityName   string

	Status VaccinationStatus
	Notes  string
}

type VaccinationStatus string

const (
	VaccinationCompleted VaccinationStatus = "completed"
	VaccinationPending   VaccinationStatus = "pending"
	VaccinationOverdue   VaccinationStatus = "overdue"
)

// Appointment es un turno reservado de un paciente con un doctor.
type Appointment struct {
	ID           string
	SubjectID    string
	DoctorID     string
	SlotDateTime time.Time
	Status       string
}
