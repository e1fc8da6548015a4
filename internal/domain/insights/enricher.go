package insights

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"health-insights/internal/domain/identities"
	"health-insights/internal/domain/records"
)

const (
	notSpecified = "Not specified"
	unknownValue = "Unknown"
	timeLayout   = "2006-01-02 15:04 UTC"
)

// Las entradas enriquecidas solo tienen campos aptos para mostrar:
// ningún id del store llega al prompt ni a la respuesta.

type HistoryEntry struct {
	Date         string
	Diagnosis    string
	Doctor       string
	Treatment    string
	Prescription string
	Notes        string
}

type VaccinationEntry struct {
	Vaccine        string
	Dose           string
	Date           string
	AdministeredBy string
	Facility       string
	NextDue        string
	Status         string
	RecordedBy     string
	Notes          string
}

type AppointmentEntry struct {
	Patient  string
	DateTime string
	Status   string
}

type TreatmentEntry struct {
	Patient      string
	Diagnosis    string
	Treatment    string
	Prescription string
	DateTime     string
}

// Enricher junta registros de varias colecciones y reemplaza ids de contraparte por nombres.
type Enricher struct {
	records records.Repository
	idents  *identities.Service
}

func NewEnricher(recs records.Repository, idents *identities.Service) *Enricher {
	return &Enricher{records: recs, idents: idents}
}

// History: historia clínica del paciente, con el nombre del doctor resuelto.
func (e *Enricher) History(ctx context.Context, subjectID string) ([]HistoryEntry, error) {
	recs, err := e.records.HealthRecordsBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}

	names := e.resolver()
	out := make([]HistoryEntry, 0, len(recs))
	for _, r := range recs {
		doctor, err := names.name(ctx, r.DoctorID)
		if err != nil {
			return nil, err
		}
		out = append(out, HistoryEntry{
			Date:         formatTime(r.RecordedAt),
			Diagnosis:    orNotSpecified(r.Diagnosis),
			Doctor:       doctor,
			Treatment:    orNotSpecified(r.Treatment),
			Prescription: orNotSpecified(r.Prescription),
			Notes:        orNotSpecified(r.Notes),
		})
	}
	return out, nil
}

// Vaccinations: vacunas del paciente; RecordedBy se resuelve a nombre.
func (e *Enricher) Vaccinations(ctx context.Context, subjectID string) ([]VaccinationEntry, error) {
	recs, err := e.records.VaccinationsBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list vaccinations: %w", err)
	}

	names := e.resolver()
	out := make([]VaccinationEntry, 0, len(recs))
	for _, v := range recs {
		recorder, err := names.name(ctx, v.RecordedBy)
		if err != nil {
			return nil, err
		}

		dose := notSpecified
		if v.DosageNumber > 0 {
			dose = strconv.Itoa(v.DosageNumber)
		}
		next := notSpecified
		if v.NextDueDate != nil {
			next = formatTime(*v.NextDueDate)
		}
		status := string(v.Status)
		if status == "" {
			status = string(records.VaccinationCompleted)
		}

		out = append(out, VaccinationEntry{
			Vaccine:        orNotSpecified(v.VaccineName),
			Dose:           dose,
			Date:           formatTime(v.DateAdministered),
			AdministeredBy: orNotSpecified(v.AdministeredBy),
			Facility:       orNotSpecified(v.FacilityName),
			NextDue:        next,
			Status:         status,
			RecordedBy:     recorder,
			Notes:          orNotSpecified(v.Notes),
		})
	}
	return out, nil
}

// DoctorAppointments: turnos del doctor con el nombre del paciente.
func (e *Enricher) DoctorAppointments(ctx context.Context, doctorID string) ([]AppointmentEntry, error) {
	appts, err := e.records.AppointmentsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	names := e.resolver()
	out := make([]AppointmentEntry, 0, len(appts))
	for _, a := range appts {
		patient, err := names.name(ctx, a.SubjectID)
		if err != nil {
			return nil, err
		}
		status := strings.TrimSpace(a.Status)
		if status == "" {
			status = unknownValue
		}
		out = append(out, AppointmentEntry{
			Patient:  patient,
			DateTime: formatTime(a.SlotDateTime),
			Status:   status,
		})
	}
	return out, nil
}

// DoctorTreatments: registros cargados por el doctor, con el nombre del paciente.
func (e *Enricher) DoctorTreatments(ctx context.Context, doctorID string) ([]TreatmentEntry, error) {
	recs, err := e.records.HealthRecordsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}

	names := e.resolver()
	out := make([]TreatmentEntry, 0, len(recs))
	for _, r := range recs {
		patient, err := names.name(ctx, r.SubjectID)
		if err != nil {
			return nil, err
		}
		out = append(out, TreatmentEntry{
			Patient:      patient,
			Diagnosis:    orNotSpecified(r.Diagnosis),
			Treatment:    orNotSpecified(r.Treatment),
			Prescription: orNotSpecified(r.Prescription),
			DateTime:     formatTime(r.RecordedAt),
		})
	}
	return out, nil
}

func (e *Enricher) resolver() *nameResolver {
	return &nameResolver{idents: e.idents, seen: map[string]string{}}
}

// nameResolver memoiza nombres dentro de una sola llamada (no entre requests).
type nameResolver struct {
	idents *identities.Service
	seen   map[string]string
}

func (n *nameResolver) name(ctx context.Context, id string) (string, error) {
	if v, ok := n.seen[id]; ok {
		return v, nil
	}
	v, err := n.idents.NameOf(ctx, id, identities.UnknownName)
	if err != nil {
		return "", fmt.Errorf("resolve identity name: %w", err)
	}
	n.seen[id] = v
	return v, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return unknownValue
	}
	return t.UTC().Format(timeLayout)
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return notSpecified
	}
	return s
}
