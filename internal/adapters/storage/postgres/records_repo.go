package postgres

import (
	"context"
	"database/sql"
	"strings"

	"health-insights/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) HealthRecordsBySubject(ctx context.Context, subjectID string) ([]records.HealthRecord, error) {
	return r.healthRecords(ctx, "student_id", subjectID)
}

func (r *RecordsRepo) HealthRecordsByDoctor(ctx context.Context, doctorID string) ([]records.HealthRecord, error) {
	return r.healthRecords(ctx, "doctor_id", doctorID)
}

// column es siempre una constante interna, nunca input del cliente.
func (r *RecordsRepo) healthRecords(ctx context.Context, column, id string) ([]records.HealthRecord, error) {
	out := make([]records.HealthRecord, 0)
	if strings.TrimSpace(id) == "" {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, student_id, doctor_id,
			COALESCE(created_at, date, date_time, "timestamp"),
			COALESCE(diagnosis, ''), COALESCE(treatment, ''),
			COALESCE(prescription, ''), COALESCE(notes, '')
		FROM health_records
		WHERE `+column+` = $1
		ORDER BY 4 ASC NULLS FIRST
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var h records.HealthRecord
		var doctor sql.NullString
		var at sql.NullTime
		if err := rows.Scan(
			&h.ID,
			&h.SubjectID,
			&doctor,
			&at,
			&h.Diagnosis,
			&h.Treatment,
			&h.Prescription,
			&h.Notes,
		); err != nil {
			return nil, err
		}
		h.DoctorID = doctor.String
		if at.Valid {
			h.RecordedAt = at.Time
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) VaccinationsBySubject(ctx context.Context, subjectID string) ([]records.Vaccination, error) {
	out := make([]records.Vaccination, 0)
	if strings.TrimSpace(subjectID) == "" {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, student_id, COALESCE(recorded_by, ''),
			COALESCE(vaccine_name, ''), COALESCE(dosage_number, 0),
			date_administered, next_due_date,
			COALESCE(administered_by, ''), COALESCE(facility_name, ''),
			COALESCE(status, ''), COALESCE(notes, '')
		FROM vaccinations
		WHERE student_id = $1
		ORDER BY date_administered ASC NULLS FIRST
	`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v records.Vaccination
		var administered, next sql.NullTime
		var status string
		if err := rows.Scan(
			&v.ID,
			&v.SubjectID,
			&v.RecordedBy,
			&v.VaccineName,
			&v.DosageNumber,
			&administered,
			&next,
			&v.AdministeredBy,
			&v.FacilityName,
			&status,
			&v.Notes,
		); err != nil {
			return nil, err
		}
		if administered.Valid {
			v.DateAdministered = administered.Time
		}
		if next.Valid {
			t := next.Time
			v.NextDueDate = &t
		}
		v.Status = records.VaccinationStatus(status)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *RecordsRepo) AppointmentsByDoctor(ctx context.Context, doctorID string) ([]records.Appointment, error) {
	out := make([]records.Appointment, 0)
	if strings.TrimSpace(doctorID) == "" {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_id, doctor_id, slot_date_time, COALESCE(status, '')
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY slot_date_time ASC NULLS FIRST
	`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a records.Appointment
		var at sql.NullTime
		if err := rows.Scan(&a.ID, &a.SubjectID, &a.DoctorID, &at, &a.Status); err != nil {
			return nil, err
		}
		if at.Valid {
			a.SlotDateTime = at.Time
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
