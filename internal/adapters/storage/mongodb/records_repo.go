package mongodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"health-insights/internal/domain/records"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type healthRecordDoc struct {
	ID           any           `bson:"_id"`
	StudentID    any           `bson:"studentId"`
	DoctorID     any           `bson:"doctorId"`
	CreatedAt    bson.RawValue `bson:"createdAt"`
	Date         bson.RawValue `bson:"date"`
	DateTime     bson.RawValue `bson:"dateTime"`
	Timestamp    bson.RawValue `bson:"timestamp"`
	Diagnosis    string        `bson:"diagnosis"`
	Treatment    string        `bson:"treatment"`
	Prescription string        `bson:"prescription"`
	Notes        string        `bson:"notes"`
}

type vaccinationDoc struct {
	ID               any           `bson:"_id"`
	StudentID        any           `bson:"studentId"`
	RecordedBy       any           `bson:"recordedBy"`
	VaccineName      string        `bson:"vaccineName"`
	DosageNumber     int           `bson:"dosageNumber"`
	DateAdministered bson.RawValue `bson:"dateAdministered"`
	NextDueDate      bson.RawValue `bson:"nextDueDate"`
	AdministeredBy   string        `bson:"administeredBy"`
	FacilityName     string        `bson:"facilityName"`
	Status           string        `bson:"status"`
	Notes            string        `bson:"notes"`
}

type appointmentDoc struct {
	ID           any           `bson:"_id"`
	StudentID    any           `bson:"studentId"`
	DoctorID     any           `bson:"doctorId"`
	SlotDateTime bson.RawValue `bson:"slotDateTime"`
	Status       string        `bson:"status"`
}

type RecordsRepo struct {
	health       *mongo.Collection
	vaccinations *mongo.Collection
	appointments *mongo.Collection
}

func NewRecordsRepo(db *mongo.Database) *RecordsRepo {
	return &RecordsRepo{
		health:       db.Collection(healthCollection),
		vaccinations: db.Collection(vaccinationsCollection),
		appointments: db.Collection(appointmentsCollection),
	}
}

func (r *RecordsRepo) HealthRecordsBySubject(ctx context.Context, subjectID string) ([]records.HealthRecord, error) {
	return r.healthRecords(ctx, "studentId", subjectID)
}

func (r *RecordsRepo) HealthRecordsByDoctor(ctx context.Context, doctorID string) ([]records.HealthRecord, error) {
	return r.healthRecords(ctx, "doctorId", doctorID)
}

func (r *RecordsRepo) healthRecords(ctx context.Context, field, id string) ([]records.HealthRecord, error) {
	out := make([]records.HealthRecord, 0)
	ids := idCandidates(id)
	if len(ids) == 0 {
		return out, nil
	}

	var docs []healthRecordDoc
	if err := findAll(ctx, r.health, bson.M{field: bson.M{"$in": ids}}, nil, &docs); err != nil {
		return nil, fmt.Errorf("find health records: %w", err)
	}

	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	// la fecha efectiva sale de varios campos; se ordena acá y no en la query
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}

func (r *RecordsRepo) VaccinationsBySubject(ctx context.Context, subjectID string) ([]records.Vaccination, error) {
	out := make([]records.Vaccination, 0)
	ids := idCandidates(subjectID)
	if len(ids) == 0 {
		return out, nil
	}

	var docs []vaccinationDoc
	sortBy := bson.D{{Key: "dateAdministered", Value: 1}}
	if err := findAll(ctx, r.vaccinations, bson.M{"studentId": bson.M{"$in": ids}}, sortBy, &docs); err != nil {
		return nil, fmt.Errorf("find vaccinations: %w", err)
	}

	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RecordsRepo) AppointmentsByDoctor(ctx context.Context, doctorID string) ([]records.Appointment, error) {
	out := make([]records.Appointment, 0)
	ids := idCandidates(doctorID)
	if len(ids) == 0 {
		return out, nil
	}

	var docs []appointmentDoc
	sortBy := bson.D{{Key: "slotDateTime", Value: 1}}
	if err := findAll(ctx, r.appointments, bson.M{"doctorId": bson.M{"$in": ids}}, sortBy, &docs); err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}

	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter any, sortBy bson.D, into any) error {
	opts := options.Find()
	if sortBy != nil {
		opts.SetSort(sortBy)
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, into)
}

// recordedAt: createdAt, o la primera fecha presente entre date, dateTime y timestamp.
func (d healthRecordDoc) recordedAt() time.Time {
	for _, v := range []bson.RawValue{d.CreatedAt, d.Date, d.DateTime, d.Timestamp} {
		if t, ok := dateValue(v); ok {
			return t
		}
	}
	return time.Time{}
}

func (d healthRecordDoc) toDomain() records.HealthRecord {
	return records.HealthRecord{
		ID:           idString(d.ID),
		SubjectID:    idString(d.StudentID),
		DoctorID:     idString(d.DoctorID),
		RecordedAt:   d.recordedAt(),
		Diagnosis:    d.Diagnosis,
		Treatment:    d.Treatment,
		Prescription: d.Prescription,
		Notes:        d.Notes,
	}
}

func (d vaccinationDoc) toDomain() records.Vaccination {
	v := records.Vaccination{
		ID:             idString(d.ID),
		SubjectID:      idString(d.StudentID),
		RecordedBy:     idString(d.RecordedBy),
		VaccineName:    d.VaccineName,
		DosageNumber:   d.DosageNumber,
		AdministeredBy: d.AdministeredBy,
		FacilityName:   d.FacilityName,
		Status:         records.VaccinationStatus(d.Status),
		Notes:          d.Notes,
	}
	if t, ok := dateValue(d.DateAdministered); ok {
		v.DateAdministered = t
	}
	if t, ok := dateValue(d.NextDueDate); ok {
		v.NextDueDate = &t
	}
	return v
}

func (d appointmentDoc) toDomain() records.Appointment {
	a := records.Appointment{
		ID:        idString(d.ID),
		SubjectID: idString(d.StudentID),
		DoctorID:  idString(d.DoctorID),
		Status:    d.Status,
	}
	if t, ok := dateValue(d.SlotDateTime); ok {
		a.SlotDateTime = t
	}
	return a
}
